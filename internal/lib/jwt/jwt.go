package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoExpiry = errors.New("token has no exp claim")

// ExpiresAt reads the exp claim of a token issued by the gallery API. The
// signature is not verified.
func ExpiresAt(token string) (time.Time, error) {
	const op = "jwt.ExpiresAt"

	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, ErrNoExpiry)
	}

	return exp.Time, nil
}
