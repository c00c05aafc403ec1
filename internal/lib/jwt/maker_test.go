package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewJWTMaker("test-secret-key", time.Hour)

	token, err := maker.GenerateToken("dr.ivanova", "nutritionist", "uid-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, "dr.ivanova", claims.Username)
	assert.Equal(t, "nutritionist", claims.Role)
	assert.Equal(t, "uid-123", claims.UserUID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := NewJWTMaker("correct-secret", time.Hour)
	other := NewJWTMaker("wrong-secret", time.Hour)

	token, err := maker.GenerateToken("dr.ivanova", "nutritionist", "uid-123")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test-secret-key", -time.Minute)

	token, err := maker.GenerateToken("dr.ivanova", "nutritionist", "uid-123")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := NewJWTMaker("test-secret-key", time.Hour)

	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
