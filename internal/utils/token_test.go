package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/internal/model"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 42, model.RolePlayer, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), tok.Exp, 5*time.Second)

	claims, err := ParseSessionToken("test-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, model.RolePlayer, claims.Role)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 1, model.RoleOwner, 60)
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 1, model.RoleOwner, -1)
	require.NoError(t, err)

	_, err = ParseSessionToken("test-secret", tok.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken("test-secret", "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionTokenUnknownRole(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 7, model.Role("admin"), 60)
	require.NoError(t, err)

	_, err = ParseSessionToken("test-secret", tok.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
	assert.False(t, VerifyPassword("not-a-hash", "hunter2"))
}
