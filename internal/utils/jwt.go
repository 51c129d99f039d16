package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/avoronin/go-blog/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateResetToken creates a signed HMAC-SHA256 JWT proving the right to
// reset the password of a single user.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	userID        - ID of the user the token is issued for
//	tokenDuration - how long the token remains valid
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Returns:
//
//	models.ResetToken - contains the signed token string and the jwt.Token object
//	error             - non-nil if parameters are invalid or signing fails
//
// Example usage:
//
//	token, err := utils.GenerateResetToken("go-blog", 42, 30*time.Minute, "secret")
func GenerateResetToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.ResetToken, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.ResetToken{}, errors.New("invalid params for generating reset token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.ResetToken{}, fmt.Errorf("error occurred during signing reset token: %w", err)
	}

	return models.ResetToken{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseResetToken validates the given reset token string and
// extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to int64 UserID
//
// Parameters:
//
//	tokenString   - the raw signed JWT string to validate and parse
//	tokenSignKey  - secret key used to verify the token signature
//	tokenIssuer   - expected issuer value to validate against the iss claim
//
// Returns:
//
//	models.ResetToken - contains the parsed jwt.Token object and the extracted UserID
//	error             - non-nil if validation fails, claims are missing, or subject cannot be parsed
//
// Example usage:
//
//	token, err := utils.ValidateAndParseResetToken(rawToken, "secret", "go-blog")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseResetToken(tokenString, tokenSignKey, tokenIssuer string) (models.ResetToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.ResetToken{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.ResetToken{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	claims, ok := token.Claims.(*models.ResetToken)
	if !ok {
		return models.ResetToken{}, errors.New("invalid token claims")
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return models.ResetToken{}, fmt.Errorf("error occurred during converting subject to user ID: %w", err)
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return models.ResetToken{}, errors.New("missing issued-at claim")
	}

	claims.Token = token
	claims.UserID = userID

	return *claims, nil
}
