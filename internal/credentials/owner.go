package credentials

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ownerClaims = []string{"id", "userId", "sub"}

// OwnerID reads the user id from the token's claims without verifying the
// signature. The server remains the authority; the value is only used to
// address the caller's own collections.
func OwnerID(token string) (string, error) {
	if token == "" {
		return "", errors.New("no token")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}
	for _, key := range ownerClaims {
		if v, ok := claims[key].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", errors.New("token carries no user id claim")
}
