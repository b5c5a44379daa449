package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/web/views"
	"github.com/gin-gonic/gin"
)

func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)
	filter := models.ParseTaskFilter(c.Query("status"))

	tasks, err := s.tasks.List(ctx, user.ID, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to list tasks", "user_id", user.ID, "error", err)
		stateFrom(c).session.Error("tasksLoadFailed", nil)
		s.redirect(c, "/login")
		return
	}

	s.render(c, http.StatusOK, views.PageDashboard, views.DashboardPage{
		Page:     s.page(c, "titleDashboard"),
		Tasks:    tasks,
		Filter:   filter,
		Filters:  models.TaskFilters,
		Statuses: models.TaskStatuses,
	})
}

func (s *Server) createTask(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)
	flash := stateFrom(c).session

	var form taskForm
	_ = c.ShouldBind(&form)

	task, err := s.tasks.Create(ctx, user.ID, form.Title, form.Description)
	switch {
	case err == nil:
		s.logger.Info(ctx, "task created", "user_id", user.ID, "task_id", task.ID)
		flash.Success("taskAdded", nil)
	case errors.Is(err, common.ErrMissingTitle):
		flash.Error("taskTitleRequired", nil)
	default:
		s.logger.Error(ctx, "failed to create task", "user_id", user.ID, "error", err)
		flash.Error("taskAddFailed", nil)
	}

	s.redirect(c, "/dashboard")
}

func (s *Server) updateTaskStatus(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)
	flash := stateFrom(c).session
	taskID := c.Param("id")

	var form statusForm
	_ = c.ShouldBind(&form)

	status, err := s.tasks.TransitionStatus(ctx, taskID, user.ID, form.NewStatus)
	switch {
	case err == nil:
		flash.Success("taskStatusUpdated", map[string]string{"Status": string(status)})
	case errors.Is(err, common.ErrInvalidStatus):
		flash.Error("invalidStatus", nil)
	case errors.Is(err, common.ErrNotFoundOrForbidden):
		flash.Error("taskNotFound", nil)
	default:
		s.logger.Error(ctx, "failed to update task status", "user_id", user.ID, "task_id", taskID, "error", err)
		flash.Error("taskStatusUpdateFailed", nil)
	}

	s.redirect(c, "/dashboard")
}

func (s *Server) deleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)
	flash := stateFrom(c).session
	taskID := c.Param("id")

	err := s.tasks.PermanentDelete(ctx, taskID, user.ID)
	switch {
	case err == nil:
		flash.Success("taskDeleted", nil)
	case errors.Is(err, common.ErrNotFoundOrForbidden):
		flash.Error("taskNotFound", nil)
	default:
		s.logger.Error(ctx, "failed to delete task", "user_id", user.ID, "task_id", taskID, "error", err)
		flash.Error("taskDeleteFailed", nil)
	}

	s.redirect(c, "/dashboard")
}
