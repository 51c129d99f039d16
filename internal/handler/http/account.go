package http

import (
	"net/http"

	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/models"
)

// maxUploadBytes bounds the multipart form size on profile picture uploads.
const maxUploadBytes = 5 << 20

func (h *Handler) accountPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "account.html", "Account", nil)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	user := currentUser(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Err(err).Msg("malformed account form")
		h.renderError(w, r, http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	update := models.UserUpdate{
		UserID:   user.UserID,
		Username: &username,
		Email:    &email,
	}

	// the picture is optional; the stored file is kept when none is sent
	if file, header, err := r.FormFile("picture"); err == nil {
		defer file.Close()

		fileName, saveErr := h.services.MediaService.SaveProfilePicture(ctx, file, header.Filename)
		if saveErr != nil {
			if isFormError(saveErr) {
				h.sessions.AddFlash(w, r, "danger", saveErr.Error())
				h.render(w, r, statusFromError(saveErr), "account.html", "Account", nil)
				return
			}
			h.serviceError(w, r, saveErr)
			return
		}
		update.ImageFile = &fileName
	}

	if _, err := h.services.AuthService.UpdateAccount(ctx, update); err != nil {
		if isFormError(err) {
			h.sessions.AddFlash(w, r, "danger", err.Error())
			h.render(w, r, statusFromError(err), "account.html", "Account", nil)
			return
		}
		h.serviceError(w, r, err)
		return
	}

	log.Info().Int64("id", user.UserID).Msg("account updated")

	h.sessions.AddFlash(w, r, "success", "Your account has been updated!")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}
