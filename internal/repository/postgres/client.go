package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/config"
)

// NewPool creates a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, cfg *config.Postgres, log *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	log.Info("Connected to PostgreSQL",
		zap.Int32("max_conns", cfg.MaxConns))

	return pool, nil
}

// InitSchema creates the core tables and the uniqueness constraints the upsert
// and dedup paths rely on. The scheduled post and content item tables are owned
// by other subsystems; they are created here only so a standalone deployment
// can run.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS engagement_events (
			id UUID PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			content_item_id TEXT,
			scheduled_post_id TEXT,
			event_type TEXT NOT NULL,
			platform TEXT NOT NULL,
			value BIGINT NOT NULL,
			external_event_id TEXT,
			metadata JSONB NOT NULL DEFAULT '{}',
			occurred_at TIMESTAMPTZ NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS engagement_events_external_dedup
			ON engagement_events (platform, external_event_id)
			WHERE external_event_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS engagement_events_tenant_recorded
			ON engagement_events (tenant_id, recorded_at)`,
		`CREATE TABLE IF NOT EXISTS post_analytics_aggregates (
			id UUID NOT NULL,
			tenant_id TEXT NOT NULL,
			scheduled_post_id TEXT NOT NULL,
			platform TEXT NOT NULL,
			date DATE NOT NULL,
			views BIGINT NOT NULL DEFAULT 0,
			likes BIGINT NOT NULL DEFAULT 0,
			comments BIGINT NOT NULL DEFAULT 0,
			shares BIGINT NOT NULL DEFAULT 0,
			clicks BIGINT NOT NULL DEFAULT 0,
			impressions BIGINT NOT NULL DEFAULT 0,
			engagement_rate NUMERIC(10,2) NOT NULL DEFAULT 0,
			click_through_rate NUMERIC(10,2) NOT NULL DEFAULT 0,
			unique_viewers BIGINT NOT NULL DEFAULT 0,
			reach BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (tenant_id, scheduled_post_id, platform, date)
		)`,
		`CREATE TABLE IF NOT EXISTS scheduled_posts (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			content_item_id TEXT NOT NULL,
			platform TEXT NOT NULL,
			status TEXT NOT NULL,
			scheduled_for TIMESTAMPTZ NOT NULL,
			published_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS content_items (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			content_type TEXT NOT NULL DEFAULT 'text'
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
