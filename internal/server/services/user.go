// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks and identity
// lookups for the session middleware.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

const (
	minPasswordLength = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// Registration is the raw input of the registration form.
type Registration struct {
	UserName        string
	Email           string
	Password        string
	PasswordConfirm string
}

// UserService provides account operations:
// - Register: validate input and create a user
// - Authenticate: check credentials through the configured auth.Strategy
// - Identify: resolve the user behind a session
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	strategy    auth.Strategy
	bcryptCost  int
}

// NewUserService constructs a UserService authenticating with a LocalStrategy
// over the credential store.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		strategy:    auth.NewLocalStrategy(m.Users(db)),
		bcryptCost:  cfg.BcryptCost,
	}
}

// Validate returns every problem found in r, or nil.
func (r Registration) Validate() error {
	var problems []common.Problem

	userName := models.NormalizeUserName(r.UserName)
	email := models.NormalizeEmail(r.Email)

	if userName == "" || email == "" || r.Password == "" || r.PasswordConfirm == "" {
		problems = append(problems, common.ProblemFieldsRequired)
	}
	if r.Password != r.PasswordConfirm {
		problems = append(problems, common.ProblemPasswordsMismatch)
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		problems = append(problems, common.ProblemPasswordTooShort)
	}
	if len(r.Password) > maxPasswordBytes {
		problems = append(problems, common.ProblemPasswordTooLong)
	}
	if email != "" && !validEmail(email) {
		problems = append(problems, common.ProblemEmailInvalid)
	}

	if len(problems) > 0 {
		return &common.ValidationError{Problems: problems}
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register validates r and creates the account. Invalid input yields a
// *common.ValidationError; a taken username or email yields a
// *common.DuplicateKeyError naming the field.
func (s *UserService) Register(ctx context.Context, r Registration) (*models.User, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	userName := models.NormalizeUserName(r.UserName)
	email := models.NormalizeEmail(r.Email)

	return dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		repo := s.repomanager.Users(tx)

		existing, err := repo.FindByUserNameOrEmail(ctx, userName, email)
		switch {
		case err == nil:
			field := common.FieldEmail
			if existing.UserName == userName {
				field = common.FieldUserName
			}
			return nil, &common.DuplicateKeyError{Field: field}
		case !errors.Is(err, common.ErrorNotFound):
			return nil, fmt.Errorf("%w: error checking existing user: %v", common.ErrorInternal, err)
		}

		user, err := models.NewUser(userName, email, r.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}

		created, err := repo.Create(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrDuplicateKey) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: error creating user: %v", common.ErrorInternal, err)
		}
		return created, nil
	})
}

// Authenticate checks userName and password. Failures are
// common.ErrUnknownUser or common.ErrBadCredential.
func (s *UserService) Authenticate(ctx context.Context, userName, password string) (*models.User, error) {
	user, err := s.strategy.Authenticate(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrUnknownUser) || errors.Is(err, common.ErrBadCredential) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// Identify returns the user with the given id, or common.ErrorNotFound.
func (s *UserService) Identify(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}
