package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/avoronin/go-blog/models"
)

// UserRepository is the persistence boundary for user accounts.
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields populated. Uniqueness violations surface as
	// [ErrUsernameExists] / [ErrEmailExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// GetUser retrieves a user by internal identifier.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// FindUserByEmail retrieves a user by email, [ErrNoUserWasFound] on miss.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByUsername retrieves a user by username, [ErrNoUserWasFound]
	// on miss.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// UpdateUser applies the non-zero fields of update (username, email,
	// image file) to the stored record.
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)

	// UpdatePassword stores a new password hash and bumps the
	// password_updated_at watermark used to invalidate spent reset tokens.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// PostRepository is the persistence boundary for blog posts.
type PostRepository interface {
	// CreatePost persists a new post and returns it with server-assigned
	// fields populated.
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)

	// GetPost retrieves a post (with author fields joined in) by
	// identifier, [ErrNoPostWasFound] on miss.
	GetPost(ctx context.Context, postID int64) (models.Post, error)

	// ListPosts returns one page of posts ordered newest first (ties
	// broken by post id descending) together with the total post count.
	// authorID filters to a single author when non-zero.
	ListPosts(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, int64, error)

	// LatestPosts returns the n newest posts without pagination bookkeeping.
	LatestPosts(ctx context.Context, n int) ([]models.Post, error)

	// UpdatePost overwrites title and content of an existing post.
	UpdatePost(ctx context.Context, postID int64, title, content string) error

	// DeletePost removes a post permanently.
	DeletePost(ctx context.Context, postID int64) error
}
