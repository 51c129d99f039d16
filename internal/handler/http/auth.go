package http

import (
	"net/http"

	"github.com/avoronin/go-blog/internal/logger"
)

// registerForm echoes the submitted values back into the re-rendered form.
type registerForm struct {
	Username string
	Email    string
}

// loginForm echoes the submitted email and preserves the post-login target.
type loginForm struct {
	Email string
	Next  string
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", "Register", registerForm{})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("malformed registration form")
		h.renderError(w, r, http.StatusBadRequest)
		return
	}

	form := registerForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	}
	password := r.PostFormValue("password")

	if password != r.PostFormValue("confirm_password") {
		h.sessions.AddFlash(w, r, "danger", "Passwords do not match.")
		h.render(w, r, http.StatusBadRequest, "register.html", "Register", form)
		return
	}

	registered, err := h.services.AuthService.Register(ctx, form.Username, form.Email, password)
	if err != nil {
		if isFormError(err) {
			h.sessions.AddFlash(w, r, "danger", err.Error())
			h.render(w, r, statusFromError(err), "register.html", "Register", form)
			return
		}
		h.serviceError(w, r, err)
		return
	}

	log.Info().Int64("id", registered.UserID).Str("username", registered.Username).Msg("user registered")

	h.sessions.AddFlash(w, r, "success", "Your account has been created! You are now able to log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", "Login", loginForm{
		Next: r.URL.Query().Get("next"),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("malformed login form")
		h.renderError(w, r, http.StatusBadRequest)
		return
	}

	form := loginForm{
		Email: r.PostFormValue("email"),
		Next:  r.URL.Query().Get("next"),
	}
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember") == "on"

	user, err := h.services.AuthService.Login(ctx, form.Email, password)
	if err != nil {
		if isFormError(err) {
			h.sessions.AddFlash(w, r, "danger", err.Error())
			h.render(w, r, statusFromError(err), "login.html", "Login", form)
			return
		}
		h.serviceError(w, r, err)
		return
	}

	if err := h.sessions.SignIn(w, r, user.UserID, remember); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("session creation failed")
		h.renderError(w, r, http.StatusInternalServerError)
		return
	}

	log.Info().Int64("id", user.UserID).Msg("user logged in")
	http.Redirect(w, r, safeNext(form.Next), http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		logger.FromRequest(r).Err(err).Msg("session teardown failed")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
