package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

const (
	listQuery = `SELECT id, user_id, title, description, status, created_at, updated_at FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	listByStatusQuery = `SELECT id, user_id, title, description, status, created_at, updated_at FROM tasks
		 WHERE user_id = $1 AND status = $2
		 ORDER BY created_at DESC
		 `
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) error {

	query :=
		`INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, string(task.Status), task.CreatedAt, task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, filter models.TaskFilter) ([]*models.Task, error) {

	var (
		rows *sql.Rows
		err  error
	)

	if status, ok := filter.Status(); ok {
		rows, err = r.db.QueryContext(ctx, listByStatusQuery, userID, string(status))
	} else {
		rows, err = r.db.QueryContext(ctx, listQuery, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Task, error) {
	query :=
		`SELECT id, user_id, title, description, status, created_at, updated_at FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, userID string, status models.TaskStatus, updatedAt time.Time) error {
	query :=
		`UPDATE tasks SET status = $1, updated_at = $2
		 WHERE id = $3 AND user_id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, string(status), updatedAt, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireOneRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*models.Task, error) {
	var (
		task   models.Task
		status string
	)

	if err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &status, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	task.Status = models.TaskStatus(status)

	return &task, nil
}

// requireOneRow turns a zero-row mutation into ErrorNotFound: either the task
// does not exist or it belongs to someone else.
func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
