package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test_secret_key_minimum_32_characters_long")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "abc123", "user@example.com", "user", time.Hour)
	assert.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "abc123", "user@example.com", "user", time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken([]byte("another_secret_key_minimum_32_characters"), token)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "abc123", "user@example.com", "user", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	token, err := GenerateToken(testSecret, "abc123", "user@example.com", "user", time.Hour)
	assert.NoError(t, err)

	exp, err := TokenExpiry(token)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestResetTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateResetToken(testSecret, "abc123", time.Hour)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := ParseResetToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", userID)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "Str0ng!pass", hash)

	assert.True(t, CheckPasswordHash("Str0ng!pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidateJWTSecret(t *testing.T) {
	assert.Error(t, ValidateJWTSecret(""))
	assert.Error(t, ValidateJWTSecret("tooshort"))
	assert.NoError(t, ValidateJWTSecret(string(testSecret)))
}
