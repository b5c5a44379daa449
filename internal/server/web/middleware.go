package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/session"
	"github.com/gin-gonic/gin"
)

const requestStateKey = "tasktracker.request"

// requestState is everything the handlers know about the caller. It lives in
// the gin context for one request only.
type requestState struct {
	session *session.State
	user    *models.User
	lang    string
}

func stateFrom(c *gin.Context) *requestState {
	if v, ok := c.Get(requestStateKey); ok {
		if st, ok := v.(*requestState); ok {
			return st
		}
	}
	return nil
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		args := []any{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "http request", args...)
			return
		}

		logger.Info(c.Request.Context(), "http request", args...)
	}
}

func (s *Server) recover(c *gin.Context, err any) {
	s.logger.Error(c.Request.Context(), "panic recovered", "path", c.Request.URL.Path, "panic", err)
	s.renderError(c, http.StatusInternalServerError)
	c.Abort()
}

// loadSession resolves the caller's identity. A session naming a user that no
// longer exists is downgraded to anonymous; a store failure ends the request
// with the 500 page.
func (s *Server) loadSession(c *gin.Context) {
	st := &requestState{
		session: s.sessions.Load(c.Request),
		lang:    s.translator.Language(c.GetHeader("Accept-Language")),
	}
	c.Set(requestStateKey, st)

	if userID := st.session.UserID(); userID != "" {
		user, err := s.users.Identify(c.Request.Context(), userID)
		switch {
		case err == nil:
			st.user = user
		case errors.Is(err, common.ErrorNotFound):
			s.logger.Warn(c.Request.Context(), "session for unknown user", "user_id", userID)
			st.session.Clear()
		default:
			s.logger.Error(c.Request.Context(), "identity lookup failed", "user_id", userID, "error", err)
			s.renderError(c, http.StatusInternalServerError)
			c.Abort()
			return
		}
	}

	c.Next()
}

func (s *Server) requireAuth(c *gin.Context) {
	st := stateFrom(c)
	if st == nil || st.user == nil {
		if st != nil {
			st.session.Error("pleaseLogIn", nil)
		}
		s.redirect(c, "/login")
		c.Abort()
		return
	}
	c.Next()
}

// currentUser is only valid behind requireAuth.
func currentUser(c *gin.Context) *models.User {
	return stateFrom(c).user
}
