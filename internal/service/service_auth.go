package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/mail"
	"github.com/avoronin/go-blog/internal/store"
	"github.com/avoronin/go-blog/internal/utils"
	"github.com/avoronin/go-blog/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, profile updates,
// and the password-reset token lifecycle, using a UserRepository for
// persistence, bcrypt for password hashing, and HMAC-SHA256 for reset tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer delivers password-reset messages to users.
	mailer mail.Mailer

	// tokenSignKey is the HMAC secret used to sign and verify reset tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued reset token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued reset token remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and Mailer and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, mailer mail.Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		mailer:         mailer,
		tokenSignKey:   cfg.SecretKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// It validates the username, email, and password, hashes the password with
// bcrypt, and delegates persistence to the UserRepository. The profile
// picture starts out as the database default.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrValidation if any field fails validation.
//   - ErrUsernameTaken / ErrEmailTaken if another account already holds the
//     username or email.
func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateUsername(username); err != nil {
		return models.User{}, err
	}
	if err := validateEmail(email); err != nil {
		return models.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return models.User{}, err
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, mapUserStoreError(err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by email and password.
//
// A missing account and a wrong password both surface as
// ErrInvalidCredentials so that responses do not reveal whether an email is
// registered.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := utils.CheckPassword(foundUser.PasswordHash, password); err != nil {
		log.Error().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// GetUser retrieves a user by internal identifier.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	foundUser, err := a.userRepository.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// GetUserByUsername retrieves a user by display name.
func (a *authService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	return foundUser, nil
}

// UpdateAccount applies a partial profile update (username, email, profile
// picture). Nil fields in update are left untouched. Supplied fields are
// validated before the update is attempted.
func (a *authService) UpdateAccount(ctx context.Context, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Username != nil {
		if err := validateUsername(*update.Username); err != nil {
			return models.User{}, err
		}
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return models.User{}, err
		}
	}

	updatedUser, err := a.userRepository.UpdateUser(ctx, update)
	if err != nil {
		log.Err(err).Int64("id", update.UserID).Msg("account update ended with error")
		return models.User{}, mapUserStoreError(err)
	}

	return updatedUser, nil
}

// CreateResetToken issues a signed password-reset token for the given user.
//
// The token is signed with the configured secret key, carries the configured
// issuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateResetToken(ctx context.Context, user models.User) (models.ResetToken, error) {
	token, err := utils.GenerateResetToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.ResetToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// RequestPasswordReset issues a reset token for the account registered under
// email and dispatches it by mail.
//
// The outcome is deliberately identical whether or not the email is
// registered, and whether or not delivery succeeds: callers always observe
// success so that the endpoint cannot be used to probe for accounts.
// Delivery failures are logged.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Msg("user search by email failed")
		}
		return nil
	}

	token, err := a.CreateResetToken(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("reset token creation failed")
		return nil
	}

	if err := a.mailer.SendPasswordReset(ctx, user, token.SignedString); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("reset mail delivery failed")
	}

	return nil
}

// ParseResetToken validates a raw reset token string and resolves it to the
// account it was issued for.
//
// Beyond signature, issuer, and expiry checks, the token's issued-at claim is
// compared against the account's password watermark: a token issued before
// the last password change has already been spent and is rejected. Every
// validation failure is normalised to ErrInvalidToken so that callers do not
// need to inspect low-level JWT errors.
func (a *authService) ParseResetToken(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseResetToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.User{}, ErrInvalidToken
	}

	user, err := a.userRepository.GetUser(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidToken
		}
		log.Err(err).Int64("id", token.UserID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	// JWT issued-at has second precision; truncate the DB watermark to match,
	// otherwise a token issued within the watermark's second is falsely stale.
	issuedAt, err := token.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return models.User{}, ErrInvalidToken
	}
	if issuedAt.Time.Before(user.PasswordUpdatedAt.Truncate(time.Second)) {
		log.Warn().Int64("id", user.UserID).Msg("spent reset token presented")
		return models.User{}, ErrInvalidToken
	}

	return user, nil
}

// ResetPassword validates the reset token, then replaces the account's
// password with the bcrypt hash of newPassword. The repository bumps the
// password watermark in the same statement, which invalidates the token just
// used along with every other token issued before this moment.
func (a *authService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	log := logger.FromContext(ctx)

	user, err := a.ParseResetToken(ctx, tokenString)
	if err != nil {
		return err
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, user.UserID, passwordHash); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}

// mapUserStoreError converts uniqueness violations from the storage layer
// into their service-level counterparts and wraps everything else.
func mapUserStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return ErrUsernameTaken
	case errors.Is(err, store.ErrEmailExists):
		return ErrEmailTaken
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("user storage error: %w", err)
	}
}
