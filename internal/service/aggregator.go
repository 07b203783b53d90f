package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/metrics"
	"github.com/postpulse/analytics-service/internal/repository"
)

// maxUpsertAttempts bounds the internal retry loop for conflicting concurrent
// writers. The increment is idempotent-by-retry: each attempt re-applies the
// delta against the latest persisted state.
const maxUpsertAttempts = 3

// Aggregator maintains the daily rollup rows. It is the only writer of
// aggregates; the natural key of every row is derived from the triggering
// event's tenant, scheduled post, platform, and UTC ingestion date.
type Aggregator struct {
	aggregates repository.AggregateRepository
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewAggregator creates an aggregator over the given store. metrics may be nil.
func NewAggregator(aggregates repository.AggregateRepository, m *metrics.Metrics, log *zap.Logger) *Aggregator {
	return &Aggregator{aggregates: aggregates, metrics: m, log: log}
}

// Update applies one recorded event to its aggregate row. Conflicts from
// concurrent writers are retried internally and never surface to the caller
// unless all attempts fail.
func (a *Aggregator) Update(ctx context.Context, event *domain.EngagementEvent) (*domain.PostAnalyticsAggregate, error) {
	key := domain.AggregateKey{
		TenantID:        event.TenantID,
		ScheduledPostID: event.ScheduledPostID,
		Platform:        event.Platform,
		Date:            domain.DateOf(event.RecordedAt),
	}

	var lastErr error
	for attempt := 1; attempt <= maxUpsertAttempts; attempt++ {
		agg, err := a.aggregates.UpsertIncrement(ctx, key, event.EventType, event.Value)
		if err == nil {
			a.observe(agg)
			return agg, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}

		lastErr = err
		if a.metrics != nil {
			a.metrics.UpsertRetries.Inc()
		}
		a.log.Warn("Aggregate upsert conflict, retrying",
			zap.Int("attempt", attempt),
			zap.String("scheduled_post_id", key.ScheduledPostID),
			zap.String("date", key.Date))
	}

	return nil, fmt.Errorf("aggregate upsert retries exhausted: %w", lastErr)
}

func (a *Aggregator) observe(agg *domain.PostAnalyticsAggregate) {
	if a.metrics != nil {
		a.metrics.AggregateUpserts.WithLabelValues(string(agg.Platform)).Inc()
	}
	// Rates are conceptually percentages but deliberately unclamped; a value
	// above 100 means the platform reported inconsistent counters.
	if agg.EngagementRate > 100 || agg.ClickThroughRate > 100 {
		a.log.Warn("Aggregate rate above 100, inconsistent platform counters",
			zap.String("scheduled_post_id", agg.ScheduledPostID),
			zap.String("platform", string(agg.Platform)),
			zap.String("date", agg.Date),
			zap.Float64("engagement_rate", agg.EngagementRate),
			zap.Float64("click_through_rate", agg.ClickThroughRate))
	}
}
