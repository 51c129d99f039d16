package http

import (
	"net/http"
	"strconv"

	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/models"
	"github.com/go-chi/chi/v5"
)

// postForm is the payload of the shared create/edit form template.
type postForm struct {
	Legend  string
	Action  string
	Title   string
	Content string
}

// userPostsPage is the payload of the per-author listing.
type userPostsPage struct {
	Page   models.Page
	Author models.User
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	page, err := h.services.PostService.List(r.Context(), pageNumber(r))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "home.html", "", page)
}

func (h *Handler) about(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about.html", "About", nil)
}

func (h *Handler) announcements(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "announcements.html", "Announcements", nil)
}

func (h *Handler) latestPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.services.PostService.Latest(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "latest_posts.html", "Latest Posts", posts)
}

func (h *Handler) userPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	page, author, err := h.services.PostService.ListByUser(r.Context(), username, pageNumber(r))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "user_posts.html", "Posts by "+author.Username, userPostsPage{
		Page:   page,
		Author: author,
	})
}

func (h *Handler) showPost(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.services.PostService.Get(r.Context(), postID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post.html", post.Title, post)
}

func (h *Handler) newPostPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "post_form.html", "New Post", postForm{
		Legend: "New Post",
		Action: "/post/new",
	})
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("malformed post form")
		h.renderError(w, r, http.StatusBadRequest)
		return
	}

	form := postForm{
		Legend:  "New Post",
		Action:  "/post/new",
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	created, err := h.services.PostService.Create(ctx, currentUser(r).UserID, form.Title, form.Content)
	if err != nil {
		if isFormError(err) {
			h.sessions.AddFlash(w, r, "danger", err.Error())
			h.render(w, r, statusFromError(err), "post_form.html", "New Post", form)
			return
		}
		h.serviceError(w, r, err)
		return
	}

	log.Info().Int64("post", created.PostID).Msg("post created")

	h.sessions.AddFlash(w, r, "success", "Your post has been created!")
	http.Redirect(w, r, "/post/"+strconv.FormatInt(created.PostID, 10), http.StatusSeeOther)
}

func (h *Handler) editPostPage(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.services.PostService.Get(r.Context(), postID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	if post.UserID != currentUser(r).UserID {
		h.renderError(w, r, http.StatusForbidden)
		return
	}

	h.render(w, r, http.StatusOK, "post_form.html", "Update Post", postForm{
		Legend:  "Update Post",
		Action:  "/post/" + strconv.FormatInt(post.PostID, 10) + "/update",
		Title:   post.Title,
		Content: post.Content,
	})
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	postID, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("malformed post form")
		h.renderError(w, r, http.StatusBadRequest)
		return
	}

	form := postForm{
		Legend:  "Update Post",
		Action:  "/post/" + strconv.FormatInt(postID, 10) + "/update",
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	updated, err := h.services.PostService.Update(ctx, postID, currentUser(r).UserID, form.Title, form.Content)
	if err != nil {
		if isFormError(err) {
			h.sessions.AddFlash(w, r, "danger", err.Error())
			h.render(w, r, statusFromError(err), "post_form.html", "Update Post", form)
			return
		}
		h.serviceError(w, r, err)
		return
	}

	log.Info().Int64("post", updated.PostID).Msg("post updated")

	h.sessions.AddFlash(w, r, "success", "Your post has been updated!")
	http.Redirect(w, r, "/post/"+strconv.FormatInt(updated.PostID, 10), http.StatusSeeOther)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	postID, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	if err := h.services.PostService.Delete(ctx, postID, currentUser(r).UserID); err != nil {
		h.serviceError(w, r, err)
		return
	}

	log.Info().Int64("post", postID).Msg("post deleted")

	h.sessions.AddFlash(w, r, "success", "Your post has been deleted!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pageNumber reads the "page" query parameter, defaulting to the first page.
func pageNumber(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func postIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
}
