package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the soft lifecycle state of a task. Any status may be set
// from any other.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusDeleted   TaskStatus = "deleted"
)

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusCompleted, TaskStatusDeleted}

// ParseTaskStatus returns the status named by s and whether it is valid.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	for _, st := range TaskStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// TaskFilter restricts a task listing to one status, or to none.
type TaskFilter string

const TaskFilterAll TaskFilter = "all"

// TaskFilters lists the filters offered by the dashboard.
var TaskFilters = []TaskFilter{
	TaskFilterAll,
	TaskFilter(TaskStatusPending),
	TaskFilter(TaskStatusCompleted),
	TaskFilter(TaskStatusDeleted),
}

// ParseTaskFilter maps a raw query value to a filter. Unrecognised values
// mean "all".
func ParseTaskFilter(s string) TaskFilter {
	if st, ok := ParseTaskStatus(strings.TrimSpace(s)); ok {
		return TaskFilter(st)
	}
	return TaskFilterAll
}

// Status returns the status the filter restricts to, if any.
func (f TaskFilter) Status() (TaskStatus, bool) {
	return ParseTaskStatus(string(f))
}

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask builds a pending task for userID. Title and description are trimmed.
func NewTask(userID, title, description string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch refreshes the modification timestamp.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC()
}
