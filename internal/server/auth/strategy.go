package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// Strategy checks a pair of credentials and returns the matching user.
// Failures are common.ErrUnknownUser or common.ErrBadCredential; anything
// else is a store failure.
type Strategy interface {
	Authenticate(ctx context.Context, userName, password string) (*models.User, error)
}

// UserFinder is the part of the credential store a LocalStrategy needs.
type UserFinder interface {
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}

// LocalStrategy authenticates against bcrypt hashes kept in the credential store.
type LocalStrategy struct {
	users UserFinder
}

func NewLocalStrategy(users UserFinder) *LocalStrategy {
	return &LocalStrategy{users: users}
}

// dummyHash is compared against when the user does not exist, so an unknown
// username costs as much as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("tasktracker-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

func (s *LocalStrategy) Authenticate(ctx context.Context, userName, password string) (*models.User, error) {
	user, err := s.users.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, common.ErrUnknownUser
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, common.ErrBadCredential
	}

	return user, nil
}
