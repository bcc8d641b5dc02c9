package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cr3t")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "s3cr3t", hash, "raw password must never be stored")
	assert.True(t, CheckPasswordHash("s3cr3t", hash))
	assert.False(t, CheckPasswordHash("s3cr3T", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestCheckPasswordHash_SingleCharMutations(t *testing.T) {
	const password = "correct horse"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	for i := 0; i < len(password); i++ {
		mutated := password[:i] + strings.ToUpper(string(password[i])) + password[i+1:]
		if mutated == password {
			continue
		}
		assert.False(t, CheckPasswordHash(mutated, hash), "mutation %q must not authenticate", mutated)
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "bcrypt must salt each hash")
	assert.True(t, CheckPasswordHash("same", h1))
	assert.True(t, CheckPasswordHash("same", h2))
}
