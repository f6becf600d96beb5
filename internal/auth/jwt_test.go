package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-characters!", 15*time.Minute)

	token, expiresAt, err := m.GenerateAccessToken("u-1", "astrid@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "astrid@example.com", claims.Email)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestJWTManager_ValidateExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-characters!", -time.Minute)

	token, _, err := m.GenerateAccessToken("u-1", "astrid@example.com")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ValidateWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-characters!", 15*time.Minute)
	other := NewJWTManager("a-different-secret-32-characters!!!", 15*time.Minute)

	token, _, err := m.GenerateAccessToken("u-1", "astrid@example.com")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ValidateGarbage(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-characters!", 15*time.Minute)

	_, err := m.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTManager_TokenValidator(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-characters!", 15*time.Minute)
	validate := m.TokenValidator()

	token, _, err := m.GenerateAccessToken("u-1", "astrid@example.com")
	require.NoError(t, err)

	claims, err := validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)

	_, err = validate("garbage")
	assert.Error(t, err)
}
