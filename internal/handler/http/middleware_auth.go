// Package http implements the HTTP transport layer of the application:
// middleware, server-rendered page handlers, and the session plumbing that
// connects cookie authentication to the service layer.
package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/utils"
	"github.com/avoronin/go-blog/models"
)

type ctxKey string

// currentUserKey carries the signed-in *models.User through the request
// context once withUser has resolved the session.
const currentUserKey ctxKey = "current_user"

// withUser resolves the session cookie to a full user record and stores it
// in the request context, together with the bare user ID under
// [utils.UserIDCtxKey]. Anonymous requests and sessions pointing at deleted
// accounts pass through unchanged.
func (h *Handler) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.sessions.CurrentUserID(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.GetUser(ctx, userID)
		if err != nil {
			// a session referring to a vanished account reads as anonymous
			logger.FromRequest(r).Warn().Int64("id", userID).Err(err).Msg("session user could not be loaded")
			next.ServeHTTP(w, r)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)
		ctx = context.WithValue(ctx, currentUserKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth gates a route to signed-in users. Anonymous visitors are
// redirected to the login page with the original URL in the "next" query
// parameter so the login handler can send them back afterwards.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) == nil {
			h.sessions.AddFlash(w, r, "info", "Please log in to access this page.")
			loginURL := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, loginURL, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// redirectIfAuthenticated sends signed-in users from the login and register
// pages back to the front page.
func (h *Handler) redirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// currentUser returns the signed-in user stored by withUser, or nil.
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(currentUserKey).(*models.User)
	return user
}

// safeNext validates a post-login redirect target. Only site-local paths
// are allowed; everything else falls back to the front page.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
