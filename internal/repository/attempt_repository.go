package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptRepository counts failed password attempts per content item and
// device in Redis. The counter expires on its own; nothing is persisted.
type AttemptRepository struct {
	client *redis.Client
}

// NewAttemptRepository constructs an attempt repository.
func NewAttemptRepository(client *redis.Client) *AttemptRepository {
	return &AttemptRepository{client: client}
}

func attemptKey(contentID int, deviceID string) string {
	return fmt.Sprintf("verify:attempts:%d:%s", contentID, deviceID)
}

// Count returns the current number of failed attempts in the window.
func (r *AttemptRepository) Count(ctx context.Context, contentID int, deviceID string) (int, error) {
	if r.client == nil {
		return 0, nil
	}

	count, err := r.client.Get(ctx, attemptKey(contentID, deviceID)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("attempt count: %w", err)
	}
	return count, nil
}

// Record increments the failed-attempt counter, starting the expiry
// window on the first failure.
func (r *AttemptRepository) Record(ctx context.Context, contentID int, deviceID string, window time.Duration) error {
	if r.client == nil {
		return nil
	}

	key := attemptKey(contentID, deviceID)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("attempt incr: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return fmt.Errorf("attempt expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful verification.
func (r *AttemptRepository) Reset(ctx context.Context, contentID int, deviceID string) error {
	if r.client == nil {
		return nil
	}

	if err := r.client.Del(ctx, attemptKey(contentID, deviceID)).Err(); err != nil {
		return fmt.Errorf("attempt reset: %w", err)
	}
	return nil
}
