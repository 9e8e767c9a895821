package repository

import (
	"context"
	"time"
)

// RevocationRepository is the logout token-revocation set. Entries carry a
// retention TTL so the store cleans itself up; the auth middleware consults it
// on every verification.
type RevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
