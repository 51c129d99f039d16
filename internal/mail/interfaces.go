package mail

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_mock.go -package=mock

import (
	"context"

	"github.com/avoronin/go-blog/models"
)

// Mailer dispatches transactional messages to users.
type Mailer interface {
	// SendPasswordReset delivers a password-reset message carrying a link
	// with the signed token to the user's registered email address.
	SendPasswordReset(ctx context.Context, user models.User, tokenString string) error
}
