package service

import (
	"context"
	"io"

	"github.com/avoronin/go-blog/models"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)

	GetUser(ctx context.Context, userID int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	UpdateAccount(ctx context.Context, update models.UserUpdate) (models.User, error)

	CreateResetToken(ctx context.Context, user models.User) (models.ResetToken, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ParseResetToken(ctx context.Context, tokenString string) (models.User, error)
	ResetPassword(ctx context.Context, tokenString, newPassword string) error
}

type PostService interface {
	List(ctx context.Context, page int) (models.Page, error)
	ListByUser(ctx context.Context, username string, page int) (models.Page, models.User, error)
	Latest(ctx context.Context) ([]models.Post, error)

	Create(ctx context.Context, authorID int64, title, content string) (models.Post, error)
	Get(ctx context.Context, postID int64) (models.Post, error)
	Update(ctx context.Context, postID, callerID int64, title, content string) (models.Post, error)
	Delete(ctx context.Context, postID, callerID int64) error
}

// MediaService handles uploaded profile pictures: validation, resizing, and
// placement into the static files directory.
type MediaService interface {
	// SaveProfilePicture reads an uploaded image, scales it down to a
	// thumbnail, and stores it under a random file name. The returned name
	// is relative to the profile-pics directory.
	SaveProfilePicture(ctx context.Context, src io.Reader, originalName string) (string, error)
}
