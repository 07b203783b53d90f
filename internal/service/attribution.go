package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/repository"
)

// AttributionResolver maps an event onto its owning scheduled post and content
// item when the caller did not supply them.
type AttributionResolver struct {
	lookups repository.LookupRepository
	log     *zap.Logger
}

// NewAttributionResolver creates a resolver backed by the given lookups.
func NewAttributionResolver(lookups repository.LookupRepository, log *zap.Logger) *AttributionResolver {
	return &AttributionResolver{lookups: lookups, log: log}
}

// Resolve fills in the event's content item from its scheduled post. An event
// with no scheduled post at all cannot be attributed: domain.ErrAttributionGap
// is returned so the caller can skip aggregation while still recording the
// event. Lookup failures are logged and swallowed; enrichment is best effort
// and never blocks recording.
func (r *AttributionResolver) Resolve(ctx context.Context, event *domain.EngagementEvent) error {
	if event.ScheduledPostID == "" {
		return domain.ErrAttributionGap
	}
	if event.ContentItemID != "" {
		return nil
	}

	post, err := r.lookups.GetScheduledPost(ctx, event.TenantID, event.ScheduledPostID)
	if err != nil {
		r.log.Warn("Scheduled post lookup failed during attribution",
			zap.String("scheduled_post_id", event.ScheduledPostID),
			zap.Error(err))
		return nil
	}
	if post == nil {
		r.log.Warn("Event references unknown scheduled post",
			zap.String("tenant_id", event.TenantID),
			zap.String("scheduled_post_id", event.ScheduledPostID))
		return nil
	}

	event.ContentItemID = post.ContentItemID
	return nil
}
