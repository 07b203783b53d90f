package repository

import (
	"context"

	"github.com/postpulse/analytics-service/internal/domain"
)

// AggregateFilter scopes aggregate queries. TenantID is mandatory; empty
// StartDate/EndDate mean unbounded, empty Platform means all platforms.
type AggregateFilter struct {
	TenantID  string
	StartDate string
	EndDate   string
	Platform  domain.Platform
}

// EventRepository is the append-only engagement event log.
type EventRepository interface {
	// Append writes the event. When the event carries an external event id
	// that was already recorded for its platform, nothing is written and
	// inserted is false.
	Append(ctx context.Context, event *domain.EngagementEvent) (inserted bool, err error)

	// FindByExternalID returns the event recorded under a platform-scoped
	// external id, or nil when none exists.
	FindByExternalID(ctx context.Context, platform domain.Platform, externalEventID string) (*domain.EngagementEvent, error)

	Ping(ctx context.Context) error
	Close() error
}

// AggregateRepository is the upsert target and read model for daily rollups.
type AggregateRepository interface {
	// UpsertIncrement atomically creates or increments the aggregate row for
	// the natural key, bumping exactly the counter matching eventType by value
	// and recomputing both rates from the post-increment counters. Concurrent
	// writers to the same key must never lose an increment; a detected
	// collision is reported as domain.ErrConflict.
	UpsertIncrement(ctx context.Context, key domain.AggregateKey, eventType domain.EventType, value int64) (*domain.PostAnalyticsAggregate, error)

	// Query returns all aggregate rows matching the filter, ordered by date
	// descending then row id ascending.
	Query(ctx context.Context, filter AggregateFilter) ([]*domain.PostAnalyticsAggregate, error)

	Ping(ctx context.Context) error
	Close() error
}

// LookupRepository reads scheduled posts and content items owned by external
// collaborators. Lookups are tenant-scoped; a row belonging to another tenant
// is indistinguishable from a missing one.
type LookupRepository interface {
	GetScheduledPost(ctx context.Context, tenantID, id string) (*domain.ScheduledPost, error)
	GetContentItem(ctx context.Context, tenantID, id string) (*domain.ContentItem, error)
}

// ArchiveRepository is the optional append-only audit sink for recorded
// events. It is never read by the query service and is not required for
// correctness.
type ArchiveRepository interface {
	InsertBatch(ctx context.Context, events []*domain.EngagementEvent) (int, error)
	InitSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
