package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
)

// ArchiveRepository implements the append-only event archive on ClickHouse.
// The archive is the audit sink for recorded events: written in batches by the
// consumer, never read by the aggregate pipeline or the query service.
// ReplacingMergeTree on the event id absorbs the occasional re-archive of the
// same event.
type ArchiveRepository struct {
	client *Client
	log    *zap.Logger
}

// NewArchiveRepository creates a ClickHouse-backed event archive.
func NewArchiveRepository(client *Client, log *zap.Logger) *ArchiveRepository {
	return &ArchiveRepository{client: client, log: log}
}

// InitSchema creates the archive table.
func (r *ArchiveRepository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS engagement_events_archive (
		event_id String,
		tenant_id String,
		content_item_id String,
		scheduled_post_id String,
		event_type LowCardinality(String),
		platform LowCardinality(String),
		value Int64,
		external_event_id String,
		metadata String,
		occurred_at DateTime64(3),
		recorded_at DateTime64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	PRIMARY KEY (event_id)
	ORDER BY (event_id, recorded_at)
	PARTITION BY toYYYYMM(recorded_at)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create archive table: %w", err)
	}

	r.log.Info("ClickHouse archive schema initialized")
	return nil
}

// InsertBatch appends a batch of recorded events to the archive.
func (r *ArchiveRepository) InsertBatch(ctx context.Context, events []*domain.EngagementEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO engagement_events_archive")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare archive batch: %w", err)
	}

	inserted := 0
	for _, event := range events {
		metadata := "{}"
		if len(event.Metadata) > 0 {
			raw, err := json.Marshal(event.Metadata)
			if err != nil {
				return 0, fmt.Errorf("failed to marshal event metadata: %w", err)
			}
			metadata = string(raw)
		}

		err := batch.Append(
			event.ID,
			event.TenantID,
			event.ContentItemID,
			event.ScheduledPostID,
			string(event.EventType),
			string(event.Platform),
			event.Value,
			event.ExternalEventID,
			metadata,
			event.OccurredAt,
			event.RecordedAt,
			uint64(time.Now().UnixNano()),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to append event to archive batch: %w", err)
		}
		inserted++
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send archive batch: %w", err)
	}

	return inserted, nil
}

// Ping checks if the ClickHouse connection is alive.
func (r *ArchiveRepository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection.
func (r *ArchiveRepository) Close() error {
	return r.client.Close()
}
