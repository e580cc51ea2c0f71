package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hashed, "$argon2id$"))
	require.NotContains(t, hashed, "password")

	ok, err := CheckPassword(hashed, "password")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = CheckPassword(hashed, "wrong_password")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashIsSaltedPerCall(t *testing.T) {
	first, err := HashPassword("password")
	require.NoError(t, err)
	second, err := HashPassword("password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	ok, err := CheckPassword(second, "password")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckPasswordCorruptedHash(t *testing.T) {
	for _, corrupted := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=1,p=4$only-three-parts",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	} {
		_, err := CheckPassword(corrupted, "password")
		require.ErrorIs(t, err, ErrInvalidHash, "hash: %q", corrupted)
	}
}
