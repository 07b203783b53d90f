package service

import (
	"context"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/dto"
)

// RecordOutcome is the result of recording one event. Duplicate means the
// delivery was absorbed as a no-op and Event is the originally recorded event.
type RecordOutcome struct {
	Event     *domain.EngagementEvent
	Duplicate bool
}

// EventServicer defines event recording operations.
type EventServicer interface {
	RecordEvent(ctx context.Context, tenantID string, req *dto.RecordEventRequest) (*RecordOutcome, error)
	RecordBulkEvents(ctx context.Context, tenantID string, reqs []dto.RecordEventRequest) ([]string, []string)
}

// AnalyticsServicer defines the read-side operations over persisted aggregates.
type AnalyticsServicer interface {
	GetOverview(ctx context.Context, tenantID string, req *dto.OverviewRequest) (*dto.OverviewResponse, error)
	GetTopPosts(ctx context.Context, tenantID string, req *dto.TopPostsRequest) (*dto.TopPostsResponse, error)
}

// DedupGuard is the fast-path duplicate check consulted before the event log's
// unique constraint. Implementations may be fail-open.
type DedupGuard interface {
	Seen(ctx context.Context, platform domain.Platform, externalEventID string) (bool, error)
	Mark(ctx context.Context, platform domain.Platform, externalEventID string)
}
