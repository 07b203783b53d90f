package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/repository"
)

// AggregateRepository is an in-memory daily rollup store. A single mutex
// serializes all upserts, which satisfies the per-key exclusion the updater
// requires: concurrent increments to the same natural key never lose updates.
type AggregateRepository struct {
	mu   sync.RWMutex
	rows map[domain.AggregateKey]*domain.PostAnalyticsAggregate
}

// NewAggregateRepository creates an empty in-memory aggregate store.
func NewAggregateRepository() *AggregateRepository {
	return &AggregateRepository{
		rows: make(map[domain.AggregateKey]*domain.PostAnalyticsAggregate),
	}
}

// UpsertIncrement creates or increments the row for the natural key and
// recomputes the derived rates.
func (r *AggregateRepository) UpsertIncrement(_ context.Context, key domain.AggregateKey, eventType domain.EventType, value int64) (*domain.PostAnalyticsAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	row, ok := r.rows[key]
	if !ok {
		row = &domain.PostAnalyticsAggregate{
			ID:              uuid.NewString(),
			TenantID:        key.TenantID,
			ScheduledPostID: key.ScheduledPostID,
			Platform:        key.Platform,
			Date:            key.Date,
			CreatedAt:       now,
		}
		r.rows[key] = row
	}

	row.Apply(eventType, value)
	row.UpdatedAt = now

	cp := *row
	return &cp, nil
}

// Query returns rows matching the filter, date descending then id ascending.
func (r *AggregateRepository) Query(_ context.Context, filter repository.AggregateFilter) ([]*domain.PostAnalyticsAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.PostAnalyticsAggregate
	for key, row := range r.rows {
		if key.TenantID != filter.TenantID {
			continue
		}
		if filter.Platform != "" && key.Platform != filter.Platform {
			continue
		}
		if filter.StartDate != "" && key.Date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && key.Date > filter.EndDate {
			continue
		}
		cp := *row
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Ping always succeeds.
func (r *AggregateRepository) Ping(context.Context) error { return nil }

// Close is a no-op.
func (r *AggregateRepository) Close() error { return nil }
