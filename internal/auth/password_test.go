package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("correct-horse-battery")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := hasher.Verify("correct-horse-battery", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = hasher.Verify("wrong", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("correct-horse-battery")
	require.NoError(t, err)
	second, err := hasher.Hash("correct-horse-battery")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestPasswordMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher()

	_, err := hasher.Verify("anything", "not-a-hash")
	require.Error(t, err)

	_, err = hasher.Verify("anything", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	require.Error(t, err)
}
