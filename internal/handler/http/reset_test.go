// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Voronin

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/avoronin/go-blog/internal/service"
	"github.com/avoronin/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetRequestPage_RendersForm(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/reset_password", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reset Password")
}

func TestResetRequest_AlwaysRedirectsToLogin(t *testing.T) {
	// known and unknown addresses must be indistinguishable
	for _, email := range []string{"alice@example.com", "ghost@example.com"} {
		auth := &mockAuthService{
			requestPasswordResetFn: func(_ context.Context, got string) error {
				assert.Equal(t, email, got)
				return nil
			},
		}
		h := newTestHandler(t, &service.Services{AuthService: auth})

		rec := serve(h, formRequest("/reset_password", url.Values{"email": {email}}))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	}
}

func TestResetPasswordPage_ValidToken(t *testing.T) {
	auth := &mockAuthService{
		parseResetTokenFn: func(_ context.Context, tokenString string) (models.User, error) {
			assert.Equal(t, "good-token", tokenString)
			return aliceUser, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/reset_password/good-token", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Choose a New Password")
	assert.Contains(t, rec.Body.String(), `action="/reset_password/good-token"`)
}

func TestResetPasswordPage_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		parseResetTokenFn: func(context.Context, string) (models.User, error) {
			return models.User{}, service.ErrInvalidToken
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/reset_password/bad-token", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/reset_password", rec.Header().Get("Location"))
}

func TestResetPassword_Success(t *testing.T) {
	auth := &mockAuthService{
		resetPasswordFn: func(_ context.Context, tokenString, newPassword string) error {
			assert.Equal(t, "good-token", tokenString)
			assert.Equal(t, "fresh-password", newPassword)
			return nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	rec := serve(h, formRequest("/reset_password/good-token", url.Values{
		"password":         {"fresh-password"},
		"confirm_password": {"fresh-password"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestResetPassword_Mismatch(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(h, formRequest("/reset_password/good-token", url.Values{
		"password":         {"one"},
		"confirm_password": {"two"},
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match.")
}

func TestResetPassword_SpentToken(t *testing.T) {
	// a token invalidated between rendering the form and submitting it sends
	// the visitor back to request a fresh one
	auth := &mockAuthService{
		resetPasswordFn: func(context.Context, string, string) error {
			return service.ErrInvalidToken
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	rec := serve(h, formRequest("/reset_password/spent-token", url.Values{
		"password":         {"fresh-password"},
		"confirm_password": {"fresh-password"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/reset_password", rec.Header().Get("Location"))
}
