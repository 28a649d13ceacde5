package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate(42, "a@example.com")
	require.NoError(t, err)

	userID, err := tm.Validate(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-one", time.Hour).Generate(42, "a@example.com")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-two", time.Hour).Validate(token)
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate(42, "a@example.com")
	require.NoError(t, err)

	_, err = tm.Validate(token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.Validate("not-a-token")
	require.Error(t, err)
}
