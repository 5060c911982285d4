package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewJWTManager("test-secret", "storycraftor")

	token, err := m.GenerateToken("user-1", "access", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "storycraftor", claims.Issuer)
}

func TestGenerateTokenPair(t *testing.T) {
	m := NewJWTManager("test-secret", "storycraftor")

	pair, err := m.GenerateTokenPair("user-1", time.Minute, time.Hour)
	require.NoError(t, err)

	access, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", access.Type)

	refresh, err := m.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refresh.Type)
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", "storycraftor")
	token, err := m.GenerateToken("user-1", "access", time.Minute)
	require.NoError(t, err)

	other := NewJWTManager("secret-b", "storycraftor")
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", "storycraftor")
	token, err := m.GenerateToken("user-1", "access", -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
