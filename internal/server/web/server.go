// Package web is the browser-facing HTTP surface: gin routes, the session
// middleware and the handlers that turn service results into redirects,
// flashes and rendered pages.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/dmitrijs2005/tasktracker/internal/server/session"
	"github.com/dmitrijs2005/tasktracker/internal/server/web/views"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, r services.Registration) (*models.User, error)
	Authenticate(ctx context.Context, userName, password string) (*models.User, error)
	Identify(ctx context.Context, userID string) (*models.User, error)
}

type TaskService interface {
	Create(ctx context.Context, ownerID, title, description string) (*models.Task, error)
	List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]*models.Task, error)
	TransitionStatus(ctx context.Context, taskID, ownerID, newStatus string) (models.TaskStatus, error)
	PermanentDelete(ctx context.Context, taskID, ownerID string) error
}

type Translator interface {
	Translate(messageID string, data map[string]string, langs ...string) string
	Language(acceptLanguage string) string
}

// Options wires a Server.
type Options struct {
	Address        string
	TrustedProxies []string
	Logger         logging.Logger
	Users          UserService
	Tasks          TaskService
	Sessions       *session.Manager
	Translator     Translator
	Renderer       *views.Renderer
}

type Server struct {
	address    string
	logger     logging.Logger
	users      UserService
	tasks      TaskService
	sessions   *session.Manager
	translator Translator
	renderer   *views.Renderer
	engine     *gin.Engine
}

func NewServer(o Options) (*Server, error) {
	s := &Server{
		address:    o.Address,
		logger:     o.Logger.With("module", "http_server"),
		users:      o.Users,
		tasks:      o.Tasks,
		sessions:   o.Sessions,
		translator: o.Translator,
		renderer:   o.Renderer,
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(o.TrustedProxies); err != nil {
		return nil, err
	}
	s.engine = engine
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.engine.Use(
		requestLogger(s.logger),
		gin.CustomRecoveryWithWriter(nil, s.recover),
		s.loadSession,
	)

	s.engine.GET("/", s.home)
	s.engine.GET("/login", s.loginPage)
	s.engine.POST("/login", s.login)
	s.engine.GET("/register", s.registerPage)
	s.engine.POST("/register", s.register)

	protected := s.engine.Group("/", s.requireAuth)
	{
		protected.GET("/logout", s.logout)
		protected.GET("/dashboard", s.dashboard)
		protected.POST("/tasks", s.createTask)
		protected.POST("/tasks/update-status/:id", s.updateTaskStatus)
		protected.POST("/tasks/delete/:id", s.deleteTask)
	}

	s.engine.NoRoute(s.notFound)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
