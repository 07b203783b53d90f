// Package memory provides in-memory repository implementations. They are not
// durable and reset on restart; the service falls back to them when no
// database is configured, and tests use them directly.
package memory

import (
	"context"
	"sync"

	"github.com/postpulse/analytics-service/internal/domain"
)

// EventRepository is an in-memory append-only event log with the same
// external-id dedup semantics as the PostgreSQL implementation.
type EventRepository struct {
	mu       sync.RWMutex
	events   map[string]*domain.EngagementEvent
	external map[string]string // platform|external_event_id -> event id
}

// NewEventRepository creates an empty in-memory event log.
func NewEventRepository() *EventRepository {
	return &EventRepository{
		events:   make(map[string]*domain.EngagementEvent),
		external: make(map[string]string),
	}
}

func externalKey(platform domain.Platform, externalEventID string) string {
	return string(platform) + "|" + externalEventID
}

// Append stores the event unless its platform-scoped external id was already
// recorded.
func (r *EventRepository) Append(_ context.Context, event *domain.EngagementEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ExternalEventID != "" {
		key := externalKey(event.Platform, event.ExternalEventID)
		if _, exists := r.external[key]; exists {
			return false, nil
		}
		r.external[key] = event.ID
	}

	cp := *event
	r.events[event.ID] = &cp
	return true, nil
}

// FindByExternalID returns the event recorded under a platform-scoped external
// id, or nil.
func (r *EventRepository) FindByExternalID(_ context.Context, platform domain.Platform, externalEventID string) (*domain.EngagementEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.external[externalKey(platform, externalEventID)]
	if !ok {
		return nil, nil
	}
	cp := *r.events[id]
	return &cp, nil
}

// Len reports the number of stored events.
func (r *EventRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Ping always succeeds.
func (r *EventRepository) Ping(context.Context) error { return nil }

// Close is a no-op.
func (r *EventRepository) Close() error { return nil }
