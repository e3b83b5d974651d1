package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(42, "user@example.com", "creator", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "creator", claims.GlobalRole)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, jti, claims.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager()
	other := NewJWTManager(JWTConfig{
		Secret:        "different-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "test",
	})

	token, _, err := m.GenerateAccessToken(1, "a@b.com", "participant", 0)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        -time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "test",
	})

	token, _, err := m.GenerateAccessToken(1, "a@b.com", "participant", 0)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenType(t *testing.T) {
	m := testManager()

	token, _, err := m.GenerateRefreshToken(7, "a@b.com", "participant", 1)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}
