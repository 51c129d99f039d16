package http

import (
	"errors"
	"net/http"

	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/service"
	"github.com/go-chi/chi/v5"
)

// resetRequestForm echoes the submitted email on the request-reset form.
type resetRequestForm struct {
	Email string
}

// resetPasswordForm carries the raw token into the new-password form action.
type resetPasswordForm struct {
	Token string
}

func (h *Handler) resetRequestPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "reset_request.html", "Reset Password", resetRequestForm{})
}

func (h *Handler) resetRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("malformed reset request form")
		h.renderError(w, r, http.StatusBadRequest)
		return
	}

	// the service reports success for unknown addresses as well, so the
	// response cannot be used to probe for registered emails
	if err := h.services.AuthService.RequestPasswordReset(ctx, r.PostFormValue("email")); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.sessions.AddFlash(w, r, "info", "An email has been sent with instructions to reset your password.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) resetPasswordPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	if _, err := h.services.AuthService.ParseResetToken(ctx, token); err != nil {
		h.sessions.AddFlash(w, r, "warning", "That is an invalid or expired token.")
		http.Redirect(w, r, "/reset_password", http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, "reset_password.html", "Reset Password", resetPasswordForm{Token: token})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	token := chi.URLParam(r, "token")

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("malformed reset form")
		h.renderError(w, r, http.StatusBadRequest)
		return
	}

	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirm_password") {
		h.sessions.AddFlash(w, r, "danger", "Passwords do not match.")
		h.render(w, r, http.StatusBadRequest, "reset_password.html", "Reset Password", resetPasswordForm{Token: token})
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, token, password); err != nil {
		// a dead token cannot be retried on this form; send the visitor back
		// to request a fresh one
		if errors.Is(err, service.ErrInvalidToken) {
			h.sessions.AddFlash(w, r, "warning", "That is an invalid or expired token.")
			http.Redirect(w, r, "/reset_password", http.StatusSeeOther)
			return
		}
		if isFormError(err) {
			h.sessions.AddFlash(w, r, "danger", err.Error())
			h.render(w, r, statusFromError(err), "reset_password.html", "Reset Password", resetPasswordForm{Token: token})
			return
		}
		h.serviceError(w, r, err)
		return
	}

	log.Info().Msg("password reset completed")

	h.sessions.AddFlash(w, r, "success", "Your password has been updated! You are now able to log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
