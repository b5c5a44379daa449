package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/dmitrijs2005/tasktracker/internal/server/web/views"
	"github.com/gin-gonic/gin"
)

func (s *Server) home(c *gin.Context) {
	s.render(c, http.StatusOK, views.PageLogin, views.LoginPage{Page: s.page(c, "titleWelcome")})
}

func (s *Server) loginPage(c *gin.Context) {
	s.render(c, http.StatusOK, views.PageLogin, views.LoginPage{Page: s.page(c, "titleLogin")})
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()
	st := stateFrom(c)

	var form loginForm
	if err := c.ShouldBind(&form); err != nil || form.UserName == "" || form.Password == "" {
		st.session.Error("loginFailed", nil)
		s.redirect(c, "/login")
		return
	}

	user, err := s.users.Authenticate(ctx, form.UserName, form.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnknownUser) || errors.Is(err, common.ErrBadCredential) {
			s.logger.Info(ctx, "login failed", "username", form.UserName, "reason", err.Error())
			st.session.Error("loginFailed", nil)
		} else {
			s.logger.Error(ctx, "login error", "username", form.UserName, "error", err)
			st.session.Error("serverError", nil)
		}
		s.redirect(c, "/login")
		return
	}

	st.session.Establish(user.ID)
	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	s.redirect(c, "/dashboard")
}

func (s *Server) registerPage(c *gin.Context) {
	s.render(c, http.StatusOK, views.PageRegister, views.RegisterPage{Page: s.page(c, "titleRegister")})
}

func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()
	st := stateFrom(c)

	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		st.session.Error(string(common.ProblemFieldsRequired), nil)
		s.redirect(c, "/register")
		return
	}

	user, err := s.users.Register(ctx, services.Registration{
		UserName:        form.UserName,
		Email:           form.Email,
		Password:        form.Password,
		PasswordConfirm: form.PasswordConfirm,
	})

	var (
		validationErr *common.ValidationError
		duplicateErr  *common.DuplicateKeyError
	)
	switch {
	case err == nil:
		s.logger.Info(ctx, "user registered", "user_id", user.ID)
		st.session.Success("registered", nil)
		s.redirect(c, "/login")
		return
	case errors.As(err, &validationErr):
		for _, p := range validationErr.Problems {
			st.session.Error(string(p), nil)
		}
	case errors.As(err, &duplicateErr):
		if duplicateErr.Field == common.FieldEmail {
			st.session.Error("duplicateEmail", nil)
		} else {
			st.session.Error("duplicateUserName", nil)
		}
	default:
		s.logger.Error(ctx, "registration error", "error", err)
		st.session.Error("registrationFailed", nil)
	}

	s.redirect(c, "/register")
}

func (s *Server) logout(c *gin.Context) {
	st := stateFrom(c)
	s.logger.Info(c.Request.Context(), "user logged out", "user_id", st.session.UserID())

	st.session.Clear()
	st.user = nil
	st.session.Success("loggedOut", nil)
	s.redirect(c, "/login")
}

func (s *Server) notFound(c *gin.Context) {
	s.renderError(c, http.StatusNotFound)
}
