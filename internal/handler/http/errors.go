package http

import (
	"net/http"

	"github.com/avoronin/go-blog/internal/logger"
)

// errorPage is the payload of the generic error template.
type errorPage struct {
	Heading string
	Message string
}

var errorPages = map[int]errorPage{
	http.StatusForbidden: {
		Heading: "You don't have permission to do that (403)",
		Message: "Please check your account and try again.",
	},
	http.StatusNotFound: {
		Heading: "Oops. Page Not Found (404)",
		Message: "That page does not exist. Please try a different location.",
	},
	http.StatusInternalServerError: {
		Heading: "Something went wrong (500)",
		Message: "We're experiencing some trouble on our end. Please try again in the near future.",
	},
}

// renderError renders the styled error page for status. Statuses without a
// dedicated page fall back to the 500 copy.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int) {
	page, ok := errorPages[status]
	if !ok {
		page = errorPages[http.StatusInternalServerError]
	}

	h.render(w, r, status, "error.html", "Error", page)
}

// serviceError logs err and renders the matching error page.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).Msg("request failed")
	h.renderError(w, r, statusFromError(err))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound)
}
