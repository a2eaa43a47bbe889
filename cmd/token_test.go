package cmd

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestTokenExpired(t *testing.T) {
	expired := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	require.True(t, tokenExpired(expired))

	live := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	require.False(t, tokenExpired(live))

	// No exp claim: the submit path stays the authority.
	noExp := signedToken(t, jwt.MapClaims{"sub": "alice"})
	require.False(t, tokenExpired(noExp))

	// Opaque tokens are treated as live.
	require.False(t, tokenExpired("not-a-jwt"))
	require.False(t, tokenExpired(""))
}
