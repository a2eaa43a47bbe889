package cmd

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether a cached broker token is a well-formed JWT
// whose expiry has already passed. Opaque tokens and JWTs without an exp
// claim are treated as live so that the submit path (with its single
// re-authentication retry) stays the authority on token validity.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
