package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "go-blog-test"
	testSignKey = "test-sign-key"
)

func TestGenerateResetToken_Success(t *testing.T) {
	token, err := GenerateResetToken(testIssuer, 42, 30*time.Minute, testSignKey)

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(42), token.UserID)
}

func TestGenerateResetToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		signKey  string
	}{
		{"empty issuer", "", time.Minute, testSignKey},
		{"zero duration", testIssuer, 0, testSignKey},
		{"empty sign key", testIssuer, time.Minute, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateResetToken(tt.issuer, 42, tt.duration, tt.signKey)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseResetToken_RoundTrip(t *testing.T) {
	generated, err := GenerateResetToken(testIssuer, 42, 30*time.Minute, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseResetToken(generated.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.UserID)
	require.NotNil(t, parsed.IssuedAt)
	assert.WithinDuration(t, time.Now(), parsed.IssuedAt.Time, 5*time.Second)
}

func TestValidateAndParseResetToken_WrongKey(t *testing.T) {
	generated, err := GenerateResetToken(testIssuer, 42, 30*time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseResetToken(generated.SignedString, "other-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseResetToken_WrongIssuer(t *testing.T) {
	generated, err := GenerateResetToken(testIssuer, 42, 30*time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseResetToken(generated.SignedString, testSignKey, "other-issuer")
	assert.Error(t, err)
}

func TestValidateAndParseResetToken_Expired(t *testing.T) {
	// A one-nanosecond lifetime is expired by the time we parse it.
	generated, err := GenerateResetToken(testIssuer, 42, time.Nanosecond, testSignKey)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = ValidateAndParseResetToken(generated.SignedString, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseResetToken_Tampered(t *testing.T) {
	generated, err := GenerateResetToken(testIssuer, 42, 30*time.Minute, testSignKey)
	require.NoError(t, err)

	tampered := generated.SignedString[:len(generated.SignedString)-2] + "xx"

	_, err = ValidateAndParseResetToken(tampered, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseResetToken_Garbage(t *testing.T) {
	_, err := ValidateAndParseResetToken("not-a-token", testSignKey, testIssuer)
	assert.Error(t, err)
}
