package http

import (
	"errors"
	"net/http"

	"github.com/avoronin/go-blog/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrUsernameTaken:      http.StatusBadRequest,
	service.ErrEmailTaken:         http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrInvalidToken:       http.StatusBadRequest,
	service.ErrInvalidMedia:       http.StatusBadRequest,

	service.ErrUserNotFound: http.StatusNotFound,
	service.ErrPostNotFound: http.StatusNotFound,
	service.ErrForbidden:    http.StatusForbidden,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// formErrors are surfaced to the visitor verbatim as a flash message above
// the re-rendered form. Everything else gets a generic error page so that
// internals never leak into responses.
var formErrors = []error{
	service.ErrValidation,
	service.ErrUsernameTaken,
	service.ErrEmailTaken,
	service.ErrInvalidCredentials,
	service.ErrInvalidMedia,
}

func isFormError(err error) bool {
	for _, target := range formErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
