package admin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/dmitrijs2005/tasktracker/internal/translator"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// NewUserAddCommand creates the useradd command. cfg.DatabaseDSN is read at
// run time so the root --dsn flag applies.
func NewUserAddCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "useradd <username> <email>",
		Short: "Create an account",
		Long: `Create an account with the given username and email.

The password is read twice from the terminal without echo. The same rules as
the registration form apply.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			password, err := promptPassword(out, "Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword(out, "Confirm password: ")
			if err != nil {
				return err
			}

			db, rm, err := connect(ctx, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.NewUserService(db, rm, cfg)
			user, err := svc.Register(ctx, services.Registration{
				UserName:        args[0],
				Email:           args[1],
				Password:        password,
				PasswordConfirm: confirm,
			})
			if err != nil {
				return describeRegisterError(err)
			}

			fmt.Fprintf(out, "user %s created (id %s)\n", user.UserName, user.ID)
			return nil
		},
	}
}

func promptPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// describeRegisterError turns registration failures into the English
// messages the web form would show.
func describeRegisterError(err error) error {
	tr, trErr := translator.New()
	if trErr != nil {
		return err
	}

	var verr *common.ValidationError
	if errors.As(err, &verr) {
		msgs := make([]string, 0, len(verr.Problems))
		for _, p := range verr.Problems {
			msgs = append(msgs, tr.Translate(string(p), nil))
		}
		return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
	}

	var dup *common.DuplicateKeyError
	if errors.As(err, &dup) {
		id := "duplicateEmail"
		if dup.Field == common.FieldUserName {
			id = "duplicateUserName"
		}
		return fmt.Errorf("%w: %s", common.ErrDuplicateKey, tr.Translate(id, nil))
	}

	return err
}
