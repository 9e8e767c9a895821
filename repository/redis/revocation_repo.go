package redis

import (
	"context"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskdeck/backend/repository"
)

type revocationRepository struct {
	client     *redislib.Client
	prefix     string
	defaultTTL time.Duration
}

// NewRevocationRepository creates the Redis-backed logout revocation set.
// Session tokens carry no expiry of their own, so every revocation entry gets
// a retention TTL and Redis handles the cleanup.
func NewRevocationRepository(client *redislib.Client, defaultTTL time.Duration) repository.RevocationRepository {
	if defaultTTL <= 0 {
		defaultTTL = 720 * time.Hour
	}
	return &revocationRepository{
		client:     client,
		prefix:     "revoked:",
		defaultTTL: defaultTTL,
	}
}

func (r *revocationRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	return r.client.Set(ctx, r.prefix+tokenID, "1", ttl).Err()
}

func (r *revocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := r.client.Get(ctx, r.prefix+tokenID).Result()
	if err != nil {
		if err == redislib.Nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
