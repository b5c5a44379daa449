package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const taskID = "22222222-2222-2222-2222-222222222222"

func TestProtectedRoutes_RedirectAnonymous(t *testing.T) {
	routes := []struct {
		method, path string
	}{
		{http.MethodGet, "/dashboard"},
		{http.MethodPost, "/tasks"},
		{http.MethodPost, "/tasks/update-status/" + taskID},
		{http.MethodPost, "/tasks/delete/" + taskID},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			b := newBrowser(t)

			var rec *httptest.ResponseRecorder
			if r.method == http.MethodPost {
				rec = b.post(r.path, url.Values{"title": {"x"}, "newStatus": {"completed"}})
			} else {
				rec = b.get(r.path)
			}

			requireRedirect(t, rec, "/login")
			assert.Contains(t, b.get("/login").Body.String(), "Please log in to view this resource")
		})
	}
}

func TestDashboard_ListsOwnTasks(t *testing.T) {
	b := newBrowser(t)
	user := testUser()
	b.loginAs(user)

	tasks := []*models.Task{
		{ID: taskID, UserID: user.ID, Title: "Newest", Status: models.TaskStatusPending, CreatedAt: time.Now()},
		{ID: "33333333-3333-3333-3333-333333333333", UserID: user.ID, Title: "Older", Status: models.TaskStatusCompleted, CreatedAt: time.Now().Add(-time.Hour)},
	}
	b.tasks.On("List", mock.Anything, user.ID, models.TaskFilterAll).Return(tasks, nil).Once()

	rec := b.get("/dashboard")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Dashboard</h1>")
	assert.Less(t, strings.Index(body, "Newest"), strings.Index(body, "Older"))
	assert.Contains(t, body, `action="/tasks/update-status/`+taskID+`"`)
	assert.Contains(t, body, `action="/tasks/delete/`+taskID+`"`)
}

func TestDashboard_Filter(t *testing.T) {
	tests := []struct {
		query string
		want  models.TaskFilter
	}{
		{"", models.TaskFilterAll},
		{"?status=all", models.TaskFilterAll},
		{"?status=completed", models.TaskFilter(models.TaskStatusCompleted)},
		{"?status=deleted", models.TaskFilter(models.TaskStatusDeleted)},
		{"?status=bogus", models.TaskFilterAll},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			b := newBrowser(t)
			user := testUser()
			b.loginAs(user)
			b.tasks.On("List", mock.Anything, user.ID, tt.want).Return([]*models.Task{}, nil).Once()

			rec := b.get("/dashboard" + tt.query)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `<a href="/dashboard?status=`+string(tt.want)+`" class="active">`)
		})
	}
}

func TestDashboard_LoadFailure(t *testing.T) {
	b := newBrowser(t)
	user := testUser()
	b.loginAs(user)
	b.tasks.On("List", mock.Anything, user.ID, models.TaskFilterAll).Return(nil, errors.New("timeout")).Once()

	requireRedirect(t, b.get("/dashboard"), "/login")
	assert.Contains(t, b.get("/login").Body.String(), "Could not load tasks.")
}

func TestCreateTask(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		err     error
		message string
	}{
		{name: "success", title: "Buy milk", message: "Task added successfully!"},
		{name: "missing title", title: "", err: common.ErrMissingTitle, message: "Task title is required."},
		{name: "store error", title: "Buy milk", err: errors.New("db"), message: "Failed to add task."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t)
			user := testUser()
			b.loginAs(user)

			var task *models.Task
			if tt.err == nil {
				task = &models.Task{ID: taskID, UserID: user.ID, Title: tt.title}
			}
			b.tasks.On("Create", mock.Anything, user.ID, tt.title, "2 liters").Return(task, tt.err).Once()

			rec := b.post("/tasks", url.Values{"title": {tt.title}, "description": {"2 liters"}})
			requireRedirect(t, rec, "/dashboard")

			b.tasks.On("List", mock.Anything, user.ID, models.TaskFilterAll).Return([]*models.Task{}, nil).Once()
			assert.Contains(t, b.get("/dashboard").Body.String(), tt.message)
		})
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		result  models.TaskStatus
		err     error
		message string
	}{
		{name: "success", status: "completed", result: models.TaskStatusCompleted, message: "Task marked as completed!"},
		{name: "invalid", status: "archived", err: common.ErrInvalidStatus, message: "Invalid status provided."},
		{name: "not owned", status: "deleted", err: common.ErrNotFoundOrForbidden, message: "Task not found or you do not have permission."},
		{name: "store error", status: "pending", err: errors.New("db"), message: "Failed to update task status."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t)
			user := testUser()
			b.loginAs(user)
			b.tasks.On("TransitionStatus", mock.Anything, taskID, user.ID, tt.status).Return(tt.result, tt.err).Once()

			rec := b.post("/tasks/update-status/"+taskID, url.Values{"newStatus": {tt.status}})
			requireRedirect(t, rec, "/dashboard")

			b.tasks.On("List", mock.Anything, user.ID, models.TaskFilterAll).Return([]*models.Task{}, nil).Once()
			assert.Contains(t, b.get("/dashboard").Body.String(), tt.message)
		})
	}
}

func TestDeleteTask(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "success", message: "Task permanently deleted."},
		{name: "not owned", err: common.ErrNotFoundOrForbidden, message: "Task not found or you do not have permission."},
		{name: "store error", err: errors.New("db"), message: "Failed to delete task."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t)
			user := testUser()
			b.loginAs(user)
			b.tasks.On("PermanentDelete", mock.Anything, taskID, user.ID).Return(tt.err).Once()

			requireRedirect(t, b.post("/tasks/delete/"+taskID, nil), "/dashboard")

			b.tasks.On("List", mock.Anything, user.ID, models.TaskFilterAll).Return([]*models.Task{}, nil).Once()
			assert.Contains(t, b.get("/dashboard").Body.String(), tt.message)
		})
	}
}
