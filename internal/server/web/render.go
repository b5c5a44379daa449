package web

import (
	"bytes"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/server/web/views"
	"github.com/gin-gonic/gin"
)

// page builds the layout data for the current request. Pending flashes are
// consumed here.
func (s *Server) page(c *gin.Context, titleID string) views.Page {
	st := stateFrom(c)

	lang := s.translator.Language(c.GetHeader("Accept-Language"))
	if st != nil {
		lang = st.lang
	}

	translate := func(messageID string, data map[string]string) string {
		return s.translator.Translate(messageID, data, lang)
	}

	p := views.NewPage(lang, translate)
	p.Title = translate(titleID, nil)

	if st != nil {
		p.User = st.user
		for _, f := range st.session.Flashes() {
			p.Flashes = append(p.Flashes, views.Message{
				Kind: string(f.Kind),
				Text: translate(f.MessageID, f.Data),
			})
		}
	}

	return p
}

// render writes a full page. Session cookies are saved first; a template
// failure falls back to the 500 page.
func (s *Server) render(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, name, data); err != nil {
		s.logger.Error(c.Request.Context(), "render failed", "page", name, "error", err)
		if name == views.PageError {
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		s.renderError(c, http.StatusInternalServerError)
		return
	}

	s.saveSession(c)
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// renderError shows the 404 or 500 page. A 500 also leaves a generic notice
// for the next page the browser renders.
func (s *Server) renderError(c *gin.Context, status int) {
	if c.Writer.Written() {
		return
	}

	titleID, messageID := "notFoundTitle", "notFoundMessage"
	if status >= http.StatusInternalServerError {
		titleID, messageID = "serverErrorTitle", "serverErrorMessage"
	}

	p := s.page(c, titleID)
	if status >= http.StatusInternalServerError {
		if st := stateFrom(c); st != nil {
			st.session.Error("serverError", nil)
		}
	}

	s.render(c, status, views.PageError, views.ErrorPage{Page: p, Message: p.T(messageID)})
}

// redirect saves the session and answers 302 Found.
func (s *Server) redirect(c *gin.Context, location string) {
	s.saveSession(c)
	c.Redirect(http.StatusFound, location)
}

func (s *Server) saveSession(c *gin.Context) {
	st := stateFrom(c)
	if st == nil {
		return
	}
	if err := s.sessions.Save(c.Writer, st.session); err != nil {
		s.logger.Error(c.Request.Context(), "failed to save session", "error", err)
	}
}
