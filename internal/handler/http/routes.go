package http

import (
	"net/http"

	"github.com/avoronin/go-blog/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestID)
	router.Use(h.withLogging)
	router.Use(h.withUser)

	// public pages
	router.Group(func(r chi.Router) {
		r.Get("/", h.home)
		r.Get("/home", h.home)
		r.Get("/about", h.about)
		r.Get("/announcements", h.announcements)
		r.Get("/posts/latest-posts", h.latestPosts)
		r.Get("/post/{postID}", h.showPost)
		r.Get("/user/{username}", h.userPosts)
		r.Get("/logout", h.logout)
	})

	// anonymous visitors only; signed-in users are sent home
	router.Group(func(r chi.Router) {
		r.Use(h.redirectIfAuthenticated)
		r.Get("/register", h.registerPage)
		r.Post("/register", h.register)
		r.Get("/login", h.loginPage)
		r.Post("/login", h.login)
		r.Get("/reset_password", h.resetRequestPage)
		r.Post("/reset_password", h.resetRequest)
		r.Get("/reset_password/{token}", h.resetPasswordPage)
		r.Post("/reset_password/{token}", h.resetPassword)
	})

	// signed-in users only
	router.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/account", h.accountPage)
		r.Post("/account", h.updateAccount)
		r.Get("/post/new", h.newPostPage)
		r.Post("/post/new", h.createPost)
		r.Get("/post/{postID}/update", h.editPostPage)
		r.Post("/post/{postID}/update", h.updatePost)
		r.Post("/post/{postID}/delete", h.deletePost)
	})

	// uploaded profile pictures come from disk, stylesheets from the binary
	router.Handle("/static/profile_pics/*",
		http.StripPrefix("/static/profile_pics/", http.FileServer(http.Dir(h.profilePicsDir))))
	router.Handle("/static/*", http.FileServer(http.FS(web.Static)))

	router.NotFound(h.notFound)

	return router
}
