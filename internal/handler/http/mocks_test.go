// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Voronin

package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/service"
	"github.com/avoronin/go-blog/internal/session"
	"github.com/avoronin/go-blog/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock services
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn             func(ctx context.Context, username, email, password string) (models.User, error)
	loginFn                func(ctx context.Context, email, password string) (models.User, error)
	getUserFn              func(ctx context.Context, userID int64) (models.User, error)
	getUserByUsernameFn    func(ctx context.Context, username string) (models.User, error)
	updateAccountFn        func(ctx context.Context, update models.UserUpdate) (models.User, error)
	createResetTokenFn     func(ctx context.Context, user models.User) (models.ResetToken, error)
	requestPasswordResetFn func(ctx context.Context, email string) error
	parseResetTokenFn      func(ctx context.Context, tokenString string) (models.User, error)
	resetPasswordFn        func(ctx context.Context, tokenString, newPassword string) error
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	return m.registerFn(ctx, username, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockAuthService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return m.getUserByUsernameFn(ctx, username)
}

func (m *mockAuthService) UpdateAccount(ctx context.Context, update models.UserUpdate) (models.User, error) {
	return m.updateAccountFn(ctx, update)
}

func (m *mockAuthService) CreateResetToken(ctx context.Context, user models.User) (models.ResetToken, error) {
	return m.createResetTokenFn(ctx, user)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.requestPasswordResetFn(ctx, email)
}

func (m *mockAuthService) ParseResetToken(ctx context.Context, tokenString string) (models.User, error) {
	return m.parseResetTokenFn(ctx, tokenString)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	return m.resetPasswordFn(ctx, tokenString, newPassword)
}

// mockPostService implements service.PostService for unit tests.
type mockPostService struct {
	listFn       func(ctx context.Context, page int) (models.Page, error)
	listByUserFn func(ctx context.Context, username string, page int) (models.Page, models.User, error)
	latestFn     func(ctx context.Context) ([]models.Post, error)
	createFn     func(ctx context.Context, authorID int64, title, content string) (models.Post, error)
	getFn        func(ctx context.Context, postID int64) (models.Post, error)
	updateFn     func(ctx context.Context, postID, callerID int64, title, content string) (models.Post, error)
	deleteFn     func(ctx context.Context, postID, callerID int64) error
}

func (m *mockPostService) List(ctx context.Context, page int) (models.Page, error) {
	return m.listFn(ctx, page)
}

func (m *mockPostService) ListByUser(ctx context.Context, username string, page int) (models.Page, models.User, error) {
	return m.listByUserFn(ctx, username, page)
}

func (m *mockPostService) Latest(ctx context.Context) ([]models.Post, error) {
	return m.latestFn(ctx)
}

func (m *mockPostService) Create(ctx context.Context, authorID int64, title, content string) (models.Post, error) {
	return m.createFn(ctx, authorID, title, content)
}

func (m *mockPostService) Get(ctx context.Context, postID int64) (models.Post, error) {
	return m.getFn(ctx, postID)
}

func (m *mockPostService) Update(ctx context.Context, postID, callerID int64, title, content string) (models.Post, error) {
	return m.updateFn(ctx, postID, callerID, title, content)
}

func (m *mockPostService) Delete(ctx context.Context, postID, callerID int64) error {
	return m.deleteFn(ctx, postID, callerID)
}

// mockMediaService implements service.MediaService for unit tests.
type mockMediaService struct {
	saveProfilePictureFn func(ctx context.Context, src io.Reader, originalName string) (string, error)
}

func (m *mockMediaService) SaveProfilePicture(ctx context.Context, src io.Reader, originalName string) (string, error) {
	return m.saveProfilePictureFn(ctx, src, originalName)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given mocks with a working
// session manager and parsed templates. Nil services get empty mocks.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()

	if svcs == nil {
		svcs = &service.Services{}
	}
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.PostService == nil {
		svcs.PostService = &mockPostService{}
	}
	if svcs.MediaService == nil {
		svcs.MediaService = &mockMediaService{}
	}

	cfg := config.StructuredConfig{
		App: config.App{
			SecretKey:        "test-secret-key",
			PageSize:         5,
			MaxPreviewChars:  300,
			RememberDuration: time.Hour,
		},
	}
	cfg.Storage.Files.ProfilePicsDir = t.TempDir()

	sessions := session.NewManager(cfg.App, logger.Nop())

	h, err := NewHandler(svcs, sessions, cfg, logger.Nop())
	require.NoError(t, err)
	return h
}

// serve routes req through the full middleware chain and returns the
// recorded response.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// sessionCookieFor signs user in and returns the resulting session cookie.
func sessionCookieFor(t *testing.T, h *Handler, userID int64) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, h.sessions.SignIn(rec, req, userID, false))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

// formRequest builds an application/x-www-form-urlencoded POST request.
func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// aliceUser is a convenience fixture used across multiple tests.
var aliceUser = models.User{
	UserID:    1,
	Username:  "alice",
	Email:     "alice@example.com",
	ImageFile: "default.jpg",
}

// authServiceForUser returns a mockAuthService whose GetUser resolves the
// given user, which is what the withUser middleware needs for signed-in
// requests.
func authServiceForUser(user models.User) *mockAuthService {
	return &mockAuthService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			if userID != user.UserID {
				return models.User{}, service.ErrUserNotFound
			}
			return user, nil
		},
	}
}
