// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Voronin

package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avoronin/go-blog/internal/service"
	"github.com/avoronin/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartRequest builds a multipart/form-data POST with the given fields
// and an optional file part named "picture".
func multipartRequest(t *testing.T, target string, fields map[string]string, fileName string, fileContent []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("picture", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAccountPage_RequiresLogin(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/account", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login?next=")
}

func TestAccountPage_ShowsProfile(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: authServiceForUser(aliceUser)})

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(sessionCookieFor(t, h, aliceUser.UserID))
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), aliceUser.Username)
	assert.Contains(t, rec.Body.String(), aliceUser.Email)
	assert.Contains(t, rec.Body.String(), "/static/profile_pics/default.jpg")
}

func TestUpdateAccount_WithoutPicture(t *testing.T) {
	auth := authServiceForUser(aliceUser)
	auth.updateAccountFn = func(_ context.Context, update models.UserUpdate) (models.User, error) {
		require.NotNil(t, update.Username)
		require.NotNil(t, update.Email)
		assert.Equal(t, "alice2", *update.Username)
		assert.Equal(t, "alice2@example.com", *update.Email)
		assert.Nil(t, update.ImageFile, "no upload means the stored picture is kept")
		return aliceUser, nil
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	req := multipartRequest(t, "/account", map[string]string{
		"username": "alice2",
		"email":    "alice2@example.com",
	}, "", nil)
	req.AddCookie(sessionCookieFor(t, h, aliceUser.UserID))
	rec := serve(h, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))
}

func TestUpdateAccount_WithPicture(t *testing.T) {
	auth := authServiceForUser(aliceUser)
	auth.updateAccountFn = func(_ context.Context, update models.UserUpdate) (models.User, error) {
		require.NotNil(t, update.ImageFile)
		assert.Equal(t, "generated.png", *update.ImageFile)
		return aliceUser, nil
	}
	media := &mockMediaService{
		saveProfilePictureFn: func(_ context.Context, src io.Reader, originalName string) (string, error) {
			assert.Equal(t, "me.png", originalName)
			content, err := io.ReadAll(src)
			require.NoError(t, err)
			assert.Equal(t, []byte("png-bytes"), content)
			return "generated.png", nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth, MediaService: media})

	req := multipartRequest(t, "/account", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
	}, "me.png", []byte("png-bytes"))
	req.AddCookie(sessionCookieFor(t, h, aliceUser.UserID))
	rec := serve(h, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestUpdateAccount_RejectedUpload(t *testing.T) {
	auth := authServiceForUser(aliceUser)
	media := &mockMediaService{
		saveProfilePictureFn: func(context.Context, io.Reader, string) (string, error) {
			return "", service.ErrInvalidMedia
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth, MediaService: media})

	req := multipartRequest(t, "/account", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
	}, "payload.svg", []byte("<svg/>"))
	req.AddCookie(sessionCookieFor(t, h, aliceUser.UserID))
	rec := serve(h, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrInvalidMedia.Error())
}
