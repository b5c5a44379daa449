package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository is the task store. Every read and mutation is scoped to the
// owning user; a task owned by someone else behaves as if it did not exist.
type Repository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByUser(ctx context.Context, userID string, filter models.TaskFilter) ([]*models.Task, error)
	GetByID(ctx context.Context, id, userID string) (*models.Task, error)
	UpdateStatus(ctx context.Context, id, userID string, status models.TaskStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id, userID string) error
}
