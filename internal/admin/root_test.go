package admin

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubManager struct {
	users      users.Repository
	migrateErr error
	migrated   bool
}

func (m *stubManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *stubManager) Users(dbx.DBTX) users.Repository { return m.users }
func (m *stubManager) Tasks(db dbx.DBTX) tasks.Repository { return tasks.NewPostgresRepository(db) }

// useDB routes connect to db and rm and records the DSN it was given.
func useDB(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *string {
	t.Helper()
	origOpen, origRM := openDB, newRepositoryManager
	t.Cleanup(func() { openDB, newRepositoryManager = origOpen, origRM })

	var dsn string
	openDB = func(ctx context.Context, d string) (*sql.DB, error) {
		dsn = d
		return db, nil
	}
	newRepositoryManager = func(*sql.DB) (repomanager.RepositoryManager, error) { return rm, nil }
	return &dsn
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "taskadmin", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"migrate", "useradd"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestDSNFlag_DefaultsFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_DSN", "postgres://env/tasks")

	f := NewRootCommand().PersistentFlags().Lookup("dsn")
	require.NotNil(t, f)
	assert.Equal(t, "postgres://env/tasks", f.DefValue)
}

func TestUserAdd_RequiresTwoArgs(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"useradd"})
	require.NoError(t, err)

	assert.Error(t, sub.Args(sub, []string{"alice"}))
	assert.NoError(t, sub.Args(sub, []string{"alice", "alice@example.com"}))
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	rm := &stubManager{}
	dsn := useDB(t, db, rm)

	out, err := execute(t, "--dsn", "postgres://flag/tasks", "migrate")
	require.NoError(t, err)

	assert.True(t, rm.migrated)
	assert.Equal(t, "postgres://flag/tasks", *dsn)
	assert.Contains(t, out, "migrations applied")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	useDB(t, db, &stubManager{migrateErr: errors.New("syntax error")})

	_, err = execute(t, "migrate")
	assert.ErrorContains(t, err, "migration error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmptyDSN(t *testing.T) {
	_, err := execute(t, "--dsn", "", "migrate")
	assert.ErrorContains(t, err, "empty database DSN")
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}
