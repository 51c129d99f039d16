package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/session"
	"github.com/avoronin/go-blog/models"
	"github.com/avoronin/go-blog/web"
)

// templateSet maps a page file name to its parsed template (layout included).
type templateSet map[string]*template.Template

// pages are the per-page templates; each one defines the "content" block
// rendered inside the shared layout.
var pages = []string{
	"home.html",
	"about.html",
	"announcements.html",
	"latest_posts.html",
	"register.html",
	"login.html",
	"account.html",
	"post.html",
	"post_form.html",
	"user_posts.html",
	"reset_request.html",
	"reset_password.html",
	"error.html",
}

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
}

// parseTemplates parses every page template together with the layout from
// the embedded template FS.
func parseTemplates() (templateSet, error) {
	set := make(templateSet, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(web.Templates, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", page, err)
		}
		set[page] = t
	}

	return set, nil
}

// pageData is the envelope every template is executed with.
type pageData struct {
	// Title feeds the document title; empty means the plain site name.
	Title string

	// User is the signed-in account, nil for anonymous visitors.
	User *models.User

	// Flashes are the one-shot messages queued since the last page view.
	Flashes []session.Flash

	// MaxPreview limits post previews on listing pages.
	MaxPreview int

	// Data carries the page-specific payload.
	Data any
}

// render executes the named page template into a buffer and writes it with
// the given status. Buffering first keeps a template failure from leaking a
// half-rendered page; those requests get a plain 500 instead.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	t, ok := h.templates[page]
	if !ok {
		logger.FromRequest(r).Error().Str("page", page).Msg("unknown template requested")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	payload := pageData{
		Title:      title,
		User:       currentUser(r),
		Flashes:    h.sessions.Flashes(w, r),
		MaxPreview: h.maxPreview,
		Data:       data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", payload); err != nil {
		logger.FromRequest(r).Err(err).Str("page", page).Msg("template execution failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
