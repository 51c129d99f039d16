package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/store"
	"github.com/avoronin/go-blog/models"
)

// postService is the concrete implementation of PostService. Listing,
// creation, and retrieval are open to any caller; updates and deletions are
// restricted to the post's author.
type postService struct {
	postRepository store.PostRepository
	userRepository store.UserRepository

	// pageSize is the number of posts per feed page and also the length of
	// the latest-posts strip.
	pageSize int

	logger *logger.Logger
}

// NewPostService constructs a new PostService wired to the given
// repositories. The user repository resolves author names for per-user
// listings.
func NewPostService(postRepository store.PostRepository, userRepository store.UserRepository, cfg config.App, logger *logger.Logger) PostService {
	return &postService{
		postRepository: postRepository,
		userRepository: userRepository,
		pageSize:       cfg.PageSize,
		logger:         logger,
	}
}

// List returns one page of the global feed, newest first. Page numbers below
// one are clamped to the first page.
func (p *postService) List(ctx context.Context, page int) (models.Page, error) {
	page = clampPage(page)

	posts, total, err := p.postRepository.ListPosts(ctx, 0, p.pageSize, (page-1)*p.pageSize)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int("page", page).Msg("post listing failed")
		return models.Page{}, fmt.Errorf("post listing failed: %w", err)
	}

	return models.Page{Posts: posts, Number: page, Size: p.pageSize, Total: total}, nil
}

// ListByUser returns one page of the posts authored by username, together
// with the author's account for the page header. Returns ErrUserNotFound if
// no such account exists.
func (p *postService) ListByUser(ctx context.Context, username string, page int) (models.Page, models.User, error) {
	log := logger.FromContext(ctx)
	page = clampPage(page)

	author, err := p.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Page{}, models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("username", username).Msg("author lookup failed")
		return models.Page{}, models.User{}, fmt.Errorf("author lookup failed: %w", err)
	}

	posts, total, err := p.postRepository.ListPosts(ctx, author.UserID, p.pageSize, (page-1)*p.pageSize)
	if err != nil {
		log.Err(err).Str("username", username).Int("page", page).Msg("post listing failed")
		return models.Page{}, models.User{}, fmt.Errorf("post listing failed: %w", err)
	}

	return models.Page{Posts: posts, Number: page, Size: p.pageSize, Total: total}, author, nil
}

// Latest returns the newest posts without pagination bookkeeping, for the
// latest-posts strip.
func (p *postService) Latest(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepository.LatestPosts(ctx, p.pageSize)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("latest posts listing failed")
		return nil, fmt.Errorf("latest posts listing failed: %w", err)
	}

	return posts, nil
}

// Create validates and persists a new post authored by authorID.
func (p *postService) Create(ctx context.Context, authorID int64, title, content string) (models.Post, error) {
	if err := validatePost(title, content); err != nil {
		return models.Post{}, err
	}

	created, err := p.postRepository.CreatePost(ctx, models.Post{Title: title, Content: content, UserID: authorID})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("author", authorID).Msg("post creation ended with error")
		return models.Post{}, fmt.Errorf("post creation ended with error: %w", err)
	}

	return created, nil
}

// Get retrieves a post with author fields joined in.
func (p *postService) Get(ctx context.Context, postID int64) (models.Post, error) {
	post, err := p.postRepository.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNoPostWasFound) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, fmt.Errorf("post retrieval failed: %w", err)
	}

	return post, nil
}

// Update overwrites the title and content of the caller's own post.
// Returns ErrForbidden when callerID is not the author, ErrPostNotFound when
// the post does not exist.
func (p *postService) Update(ctx context.Context, postID, callerID int64, title, content string) (models.Post, error) {
	if _, err := p.authorize(ctx, postID, callerID); err != nil {
		return models.Post{}, err
	}

	if err := validatePost(title, content); err != nil {
		return models.Post{}, err
	}

	if err := p.postRepository.UpdatePost(ctx, postID, title, content); err != nil {
		if errors.Is(err, store.ErrNoPostWasFound) {
			return models.Post{}, ErrPostNotFound
		}
		logger.FromContext(ctx).Err(err).Int64("post", postID).Msg("post update ended with error")
		return models.Post{}, fmt.Errorf("post update ended with error: %w", err)
	}

	return p.Get(ctx, postID)
}

// Delete removes the caller's own post. Same authorization rules as Update.
func (p *postService) Delete(ctx context.Context, postID, callerID int64) error {
	if _, err := p.authorize(ctx, postID, callerID); err != nil {
		return err
	}

	if err := p.postRepository.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNoPostWasFound) {
			return ErrPostNotFound
		}
		logger.FromContext(ctx).Err(err).Int64("post", postID).Msg("post deletion ended with error")
		return fmt.Errorf("post deletion ended with error: %w", err)
	}

	return nil
}

// authorize loads the post and checks that callerID is its author. Ownership
// checks for every mutating operation go through here.
func (p *postService) authorize(ctx context.Context, postID, callerID int64) (models.Post, error) {
	post, err := p.Get(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}

	if post.UserID != callerID {
		logger.FromContext(ctx).Warn().
			Int64("post", postID).
			Int64("author", post.UserID).
			Int64("caller", callerID).
			Msg("post mutation denied")
		return models.Post{}, ErrForbidden
	}

	return post, nil
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
