// Package views renders the HTML pages. Templates are embedded; every page
// is the shared layout wrapped around a page-specific "content" block.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
	PageError     = "error"
)

var pageNames = []string{PageLogin, PageRegister, PageDashboard, PageError}

// TranslateFunc resolves a message ID in the request's language.
type TranslateFunc func(messageID string, data map[string]string) string

// Message is a translated flash ready for display.
type Message struct {
	Kind string
	Text string
}

// Page carries what the layout needs.
type Page struct {
	Title   string
	Lang    string
	User    *models.User
	Flashes []Message

	translate TranslateFunc
}

func NewPage(lang string, translate TranslateFunc) Page {
	return Page{Lang: lang, translate: translate}
}

// T translates messageID.
func (p Page) T(messageID string) string {
	return p.TData(messageID)
}

// TData translates messageID with template data given as key, value pairs.
func (p Page) TData(messageID string, kv ...string) string {
	if p.translate == nil {
		return messageID
	}
	var data map[string]string
	if len(kv) > 1 {
		data = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			data[kv[i]] = kv[i+1]
		}
	}
	return p.translate(messageID, data)
}

var labelIDs = map[string]string{
	string(models.TaskFilterAll):       "statusAll",
	string(models.TaskStatusPending):   "statusPending",
	string(models.TaskStatusCompleted): "statusCompleted",
	string(models.TaskStatusDeleted):   "statusDeleted",
}

// Label is the display name of a task status or filter.
func (p Page) Label(value string) string {
	if id, ok := labelIDs[value]; ok {
		return p.T(id)
	}
	return value
}

type LoginPage struct {
	Page
}

type RegisterPage struct {
	Page
}

type DashboardPage struct {
	Page
	Tasks    []*models.Task
	Filter   models.TaskFilter
	Filters  []models.TaskFilter
	Statuses []models.TaskStatus
}

type ErrorPage struct {
	Page
	Message string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render executes page into w. Nothing is written if execution fails.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
