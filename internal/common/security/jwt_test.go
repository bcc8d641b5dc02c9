package security

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_GenerateAndVerify(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-key"), time.Hour)

	tokenString, err := issuer.Generate("u1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwtauth.VerifyToken(issuer.Auth(), tokenString)
	require.NoError(t, err)

	uid, ok := token.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "u1", uid)

	role, ok := token.Get("role")
	require.True(t, ok)
	assert.Equal(t, "admin", role)
}

func TestTokenIssuer_RejectsForeignKey(t *testing.T) {
	issuer := NewTokenIssuer([]byte("key-one"), time.Hour)
	other := NewTokenIssuer([]byte("key-two"), time.Hour)

	tokenString, err := issuer.Generate("u1", "user")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(other.Auth(), tokenString)
	assert.Error(t, err, "token signed with a different key must not verify")
}

func TestClaimHelpers(t *testing.T) {
	claims := jwt.MapClaims{"user_id": "u9", "role": "user"}

	uid, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "u9", uid)

	role, err := GetUserRoleFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user", role)

	_, err = GetUserIDFromClaims(jwt.MapClaims{})
	assert.Error(t, err)
	_, err = GetUserRoleFromClaims(jwt.MapClaims{"role": 42})
	assert.Error(t, err)
}
