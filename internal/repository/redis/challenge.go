package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const challengePrefix = "authchallenge:"

// ErrChallengeNotFound is returned when a challenge is unknown or expired.
var ErrChallengeNotFound = errors.New("challenge not found or expired")

// ChallengeStore keeps issued login challenges in Redis until they are
// consumed or expire. Each challenge is single-use.
type ChallengeStore struct {
	client *Client
	ttl    time.Duration
}

// NewChallengeStore creates a new challenge store
func NewChallengeStore(client *Client, ttl time.Duration) *ChallengeStore {
	return &ChallengeStore{client: client, ttl: ttl}
}

// Put stores a freshly issued challenge with the configured TTL
func (s *ChallengeStore) Put(ctx context.Context, challenge string) error {
	key := fmt.Sprintf("%s%s", challengePrefix, challenge)
	if err := s.client.rdb.Set(ctx, key, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	return nil
}

// Consume removes a challenge, failing if it was never issued or already
// used
func (s *ChallengeStore) Consume(ctx context.Context, challenge string) error {
	key := fmt.Sprintf("%s%s", challengePrefix, challenge)

	deleted, err := s.client.rdb.Del(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to consume challenge: %w", err)
	}
	if deleted == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

// TTL returns the configured challenge lifetime
func (s *ChallengeStore) TTL() time.Duration {
	return s.ttl
}
