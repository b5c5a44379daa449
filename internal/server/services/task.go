package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService implements the task workflow. Every operation is scoped to an
// owner; another user's task is reported as common.ErrNotFoundOrForbidden.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, common.ErrMissingTitle
	}

	task := models.NewTask(ownerID, title, description)
	if err := s.repomanager.Tasks(s.db).Create(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: error creating task: %v", common.ErrorInternal, err)
	}
	return task, nil
}

// List returns the owner's tasks, newest first.
func (s *TaskService) List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]*models.Task, error) {
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: error listing tasks: %v", common.ErrorInternal, err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, taskID, ownerID string) (*models.Task, error) {
	if !validID(taskID) {
		return nil, common.ErrNotFoundOrForbidden
	}

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

// TransitionStatus moves a task to newStatus. Any transition is allowed,
// including to the current status.
func (s *TaskService) TransitionStatus(ctx context.Context, taskID, ownerID, newStatus string) (models.TaskStatus, error) {
	status, ok := models.ParseTaskStatus(newStatus)
	if !ok {
		return "", common.ErrInvalidStatus
	}
	if !validID(taskID) {
		return "", common.ErrNotFoundOrForbidden
	}

	if err := s.repomanager.Tasks(s.db).UpdateStatus(ctx, taskID, ownerID, status, time.Now().UTC()); err != nil {
		return "", storeError(err)
	}
	return status, nil
}

// PermanentDelete removes the task whatever its status.
func (s *TaskService) PermanentDelete(ctx context.Context, taskID, ownerID string) error {
	if !validID(taskID) {
		return common.ErrNotFoundOrForbidden
	}

	if err := s.repomanager.Tasks(s.db).Delete(ctx, taskID, ownerID); err != nil {
		return storeError(err)
	}
	return nil
}

// validID filters out ids the store could never hold, so they report as
// missing rather than as a store failure.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func storeError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrNotFoundOrForbidden
	}
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
