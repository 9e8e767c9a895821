package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/golang-jwt/jwt/v4"
)

// Claims embedded in every session token. Tokens carry no expiry; the
// revocation set is the only thing that ends a session server-side.
const (
	ClaimUserID   = "user_id"
	ClaimUsername = "username"
)

// TokenID derives the revocation-set key for a raw token. The token itself is
// never stored.
func TokenID(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

func signToken(secret, userID, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		ClaimUserID:   userID,
		ClaimUsername: username,
	})
	return token.SignedString([]byte(secret))
}
