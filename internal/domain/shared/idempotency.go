package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed event IDs so redelivered events
// are not handled twice.
type IdempotencyStore interface {
	// MarkProcessed records an event ID with a TTL. It returns false
	// when the ID was already recorded.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the event ID is currently recorded.
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	Close() error
}

// IdempotencyConfig controls deduplication of event handling.
type IdempotencyConfig struct {
	// TTL bounds how long a processed event ID is remembered. After it
	// expires the same ID would be handled again.
	TTL time.Duration

	Enabled bool
}

// DefaultIdempotencyConfig remembers processed events for a day.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{TTL: 24 * time.Hour, Enabled: true}
}
