// Package idempotency provides a Valkey-backed fast path for duplicate
// webhook deliveries. It is an optimization only: the unique index on the
// event log is what actually enforces exactly-once recording.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/config"
	"github.com/postpulse/analytics-service/internal/domain"
)

// Guard tracks recently recorded external event ids.
type Guard struct {
	client   *redis.Client
	ttl      time.Duration
	failOpen bool
	log      *zap.Logger
}

// NewGuard connects to Valkey and returns a guard. With failOpen set, Valkey
// outages degrade to "not seen" instead of failing ingestion.
func NewGuard(ctx context.Context, cfg *config.Valkey, log *zap.Logger) (*Guard, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	log.Info("Valkey idempotency guard connected",
		zap.String("host", cfg.Host),
		zap.Bool("fail_open", cfg.IdempotencyFailOpen))

	return &Guard{
		client:   client,
		ttl:      time.Duration(cfg.IdempotencyTTLSec) * time.Second,
		failOpen: cfg.IdempotencyFailOpen,
		log:      log,
	}, nil
}

func dedupKey(platform domain.Platform, externalEventID string) string {
	return fmt.Sprintf("dedup:%s:%s", platform, externalEventID)
}

// Seen reports whether the platform-scoped external event id was recently
// recorded.
func (g *Guard) Seen(ctx context.Context, platform domain.Platform, externalEventID string) (bool, error) {
	n, err := g.client.Exists(ctx, dedupKey(platform, externalEventID)).Result()
	if err != nil {
		if g.failOpen {
			g.log.Warn("Idempotency check failed, continuing fail-open", zap.Error(err))
			return false, nil
		}
		return false, fmt.Errorf("idempotency check failed: %w", err)
	}
	return n > 0, nil
}

// Mark remembers a recorded external event id. Failures are logged, not
// propagated: the database constraint still catches the duplicate.
func (g *Guard) Mark(ctx context.Context, platform domain.Platform, externalEventID string) {
	if err := g.client.Set(ctx, dedupKey(platform, externalEventID), 1, g.ttl).Err(); err != nil {
		g.log.Warn("Failed to mark event in idempotency guard", zap.Error(err))
	}
}

// Close releases the Valkey connection.
func (g *Guard) Close() error {
	return g.client.Close()
}
