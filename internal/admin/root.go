// Package admin implements taskadmin, the operator command line for the
// tasktracker database: applying migrations and creating accounts without
// going through the web form.
package admin

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/spf13/cobra"
)

// seams for tests
var (
	openDB               = repomanager.OpenDB
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DSN string
}

// NewRootCommand creates the taskadmin root command. Settings come from the
// same defaults and environment as the server; --dsn overrides the database.
func NewRootCommand() *cobra.Command {
	cfg := config.LoadEnvConfig()
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "taskadmin",
		Short:         "tasktracker operator tool",
		Long:          "Maintenance commands for the tasktracker database: schema migrations and account creation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.DSN == "" {
				return fmt.Errorf("empty database DSN")
			}
			cfg.DatabaseDSN = opts.DSN
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", cfg.DatabaseDSN, "PostgreSQL DSN")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewUserAddCommand(cfg))

	return cmd
}

// connect opens the database and its repository manager. The caller closes db.
func connect(ctx context.Context, dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	db, err := openDB(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := newRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("repository init error: %w", err)
	}
	return db, rm, nil
}
