package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("1234")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.True(t, VerifyPassword("1234", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestHashPasswordFreshSaltPerCall(t *testing.T) {
	h1, err := HashPassword("1234")
	require.NoError(t, err)
	h2, err := HashPassword("1234")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("1234", h1))
	assert.True(t, VerifyPassword("1234", h2))
}

func TestVerifyPasswordCrossPasswords(t *testing.T) {
	h, err := HashPassword("5678")
	require.NoError(t, err)
	assert.False(t, VerifyPassword("1234", h))
}

func TestVerifyPasswordFailsClosedOnMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not a hash at all",
		"$argon2id$v=19$m=65536,t=3,p=1$onlyonefield",
		"$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$ZGlnZXN0",         // wrong variant
		"$argon2id$v=18$m=65536,t=3,p=1$c2FsdA$ZGlnZXN0",        // wrong version
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$ZGlnZXN0",            // zero params
		"$argon2id$v=19$m=65536,t=3,p=1$!!!badsalt!!!$ZGlnZXN0", // bad base64
		"$argon2id$v=19$m=65536,t=3,p=1$c2FsdA$",                // empty digest
	}
	for _, c := range cases {
		assert.False(t, VerifyPassword("1234", c), "input %q must not verify", c)
	}
}
