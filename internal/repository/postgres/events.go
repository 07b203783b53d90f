package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
)

// EventRepository implements the append-only event log on PostgreSQL.
// Duplicate webhook deliveries are absorbed by the partial unique index on
// (platform, external_event_id).
type EventRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewEventRepository creates a PostgreSQL-backed event log.
func NewEventRepository(pool *pgxpool.Pool, log *zap.Logger) *EventRepository {
	return &EventRepository{pool: pool, log: log}
}

// Append writes one immutable event. Returns inserted=false when the
// platform-scoped external event id was already recorded.
func (r *EventRepository) Append(ctx context.Context, event *domain.EngagementEvent) (bool, error) {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return false, fmt.Errorf("failed to marshal event metadata: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO engagement_events (
			id, tenant_id, content_item_id, scheduled_post_id,
			event_type, platform, value, external_event_id,
			metadata, occurred_at, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (platform, external_event_id)
			WHERE external_event_id IS NOT NULL
			DO NOTHING
	`,
		event.ID,
		event.TenantID,
		nullString(event.ContentItemID),
		nullString(event.ScheduledPostID),
		string(event.EventType),
		string(event.Platform),
		event.Value,
		nullString(event.ExternalEventID),
		metadata,
		event.OccurredAt,
		event.RecordedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to append event: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// FindByExternalID returns the event recorded under a platform-scoped external
// id, or nil when none exists.
func (r *EventRepository) FindByExternalID(ctx context.Context, platform domain.Platform, externalEventID string) (*domain.EngagementEvent, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, content_item_id, scheduled_post_id,
		       event_type, platform, value, external_event_id,
		       metadata, occurred_at, recorded_at
		FROM engagement_events
		WHERE platform = $1 AND external_event_id = $2
	`, string(platform), externalEventID)

	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event by external id: %w", err)
	}
	return event, nil
}

// Ping checks database connectivity.
func (r *EventRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close is a no-op; the pool is shared and closed by the owner.
func (r *EventRepository) Close() error { return nil }

func scanEvent(row pgx.Row) (*domain.EngagementEvent, error) {
	var (
		event           domain.EngagementEvent
		contentItemID   *string
		scheduledPostID *string
		externalEventID *string
		eventType       string
		platform        string
		metadata        []byte
	)

	err := row.Scan(
		&event.ID, &event.TenantID, &contentItemID, &scheduledPostID,
		&eventType, &platform, &event.Value, &externalEventID,
		&metadata, &event.OccurredAt, &event.RecordedAt,
	)
	if err != nil {
		return nil, err
	}

	event.EventType = domain.EventType(eventType)
	event.Platform = domain.Platform(platform)
	if contentItemID != nil {
		event.ContentItemID = *contentItemID
	}
	if scheduledPostID != nil {
		event.ScheduledPostID = *scheduledPostID
	}
	if externalEventID != nil {
		event.ExternalEventID = *externalEventID
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event metadata: %w", err)
		}
	}

	return &event, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
