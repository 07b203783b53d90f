package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/dto"
	"github.com/postpulse/analytics-service/internal/metrics"
	"github.com/postpulse/analytics-service/internal/repository"
)

// EventService is the event recorder: it validates submissions, appends them
// to the immutable event log, and synchronously triggers the aggregate update.
type EventService struct {
	events     repository.EventRepository
	resolver   *AttributionResolver
	aggregator *Aggregator
	guard      DedupGuard
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewEventService creates an event service. guard and m may be nil.
func NewEventService(
	events repository.EventRepository,
	resolver *AttributionResolver,
	aggregator *Aggregator,
	guard DedupGuard,
	m *metrics.Metrics,
	log *zap.Logger,
) *EventService {
	return &EventService{
		events:     events,
		resolver:   resolver,
		aggregator: aggregator,
		guard:      guard,
		metrics:    m,
		log:        log,
	}
}

// RecordEvent validates and appends one engagement event, then updates its
// aggregate row. The append is the durable source of truth: it is never rolled
// back when the downstream aggregate update fails.
func (s *EventService) RecordEvent(ctx context.Context, tenantID string, req *dto.RecordEventRequest) (*RecordOutcome, error) {
	event, err := s.buildEvent(tenantID, req)
	if err != nil {
		return nil, err
	}

	// Fast path: a delivery the guard has already seen is resolved to the
	// originally recorded event without touching the log.
	if s.guard != nil && event.ExternalEventID != "" {
		seen, err := s.guard.Seen(ctx, event.Platform, event.ExternalEventID)
		if err != nil {
			return nil, err
		}
		if seen {
			if existing := s.findExisting(ctx, event); existing != nil {
				return &RecordOutcome{Event: existing, Duplicate: true}, nil
			}
		}
	}

	gapErr := s.resolver.Resolve(ctx, event)

	inserted, err := s.events.Append(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}
	if !inserted {
		// The platform re-delivered an event we already hold. Duplicate
		// deliveries are a no-op success, not an error.
		if s.metrics != nil {
			s.metrics.DuplicateEvents.WithLabelValues(string(event.Platform)).Inc()
		}
		s.log.Info("Duplicate event delivery absorbed",
			zap.String("platform", string(event.Platform)),
			zap.String("external_event_id", event.ExternalEventID))
		if existing := s.findExisting(ctx, event); existing != nil {
			return &RecordOutcome{Event: existing, Duplicate: true}, nil
		}
		return &RecordOutcome{Event: event, Duplicate: true}, nil
	}

	if s.guard != nil && event.ExternalEventID != "" {
		s.guard.Mark(ctx, event.Platform, event.ExternalEventID)
	}
	if s.metrics != nil {
		s.metrics.EventsRecorded.WithLabelValues(string(event.EventType), string(event.Platform)).Inc()
	}

	if gapErr != nil {
		// The event has no scheduled post and no aggregate natural key. It
		// stays in the log for later attribution; aggregation is skipped.
		if s.metrics != nil {
			s.metrics.AttributionGaps.Inc()
		}
		s.log.Warn("Event recorded without aggregation",
			zap.String("event_id", event.ID),
			zap.String("tenant_id", event.TenantID),
			zap.String("event_type", string(event.EventType)))
		return &RecordOutcome{Event: event}, nil
	}

	if _, err := s.aggregator.Update(ctx, event); err != nil {
		s.log.Error("Aggregate update failed after event append",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update aggregate: %w", err)
	}

	return &RecordOutcome{Event: event}, nil
}

// RecordBulkEvents records up to 1000 events, collecting per-item results.
// Failed items do not abort the rest of the batch.
func (s *EventService) RecordBulkEvents(ctx context.Context, tenantID string, reqs []dto.RecordEventRequest) ([]string, []string) {
	var eventIDs []string
	var errs []string

	for i := range reqs {
		outcome, err := s.RecordEvent(ctx, tenantID, &reqs[i])
		if err != nil {
			errs = append(errs, fmt.Sprintf("event %d: %v", i, err))
			continue
		}
		eventIDs = append(eventIDs, outcome.Event.ID)
	}

	return eventIDs, errs
}

func (s *EventService) buildEvent(tenantID string, req *dto.RecordEventRequest) (*domain.EngagementEvent, error) {
	if tenantID == "" {
		return nil, domain.ErrMissingTenant
	}

	eventType, err := domain.ParseEventType(req.EventType)
	if err != nil {
		return nil, err
	}
	platform, err := domain.ParsePlatform(req.Platform)
	if err != nil {
		return nil, err
	}

	value := int64(1)
	if req.Value != nil {
		if *req.Value < 1 {
			return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidValue, *req.Value)
		}
		value = *req.Value
	}

	now := time.Now().UTC()
	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	return &domain.EngagementEvent{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		ContentItemID:   req.ContentItemID,
		ScheduledPostID: req.ScheduledPostID,
		EventType:       eventType,
		Platform:        platform,
		Value:           value,
		ExternalEventID: req.ExternalEventID,
		Metadata:        req.Metadata,
		OccurredAt:      occurredAt.UTC(),
		RecordedAt:      now,
	}, nil
}

func (s *EventService) findExisting(ctx context.Context, event *domain.EngagementEvent) *domain.EngagementEvent {
	if event.ExternalEventID == "" {
		return nil
	}
	existing, err := s.events.FindByExternalID(ctx, event.Platform, event.ExternalEventID)
	if err != nil {
		s.log.Warn("Failed to load original event for duplicate delivery",
			zap.String("external_event_id", event.ExternalEventID),
			zap.Error(err))
		return nil
	}
	// Dedup keys are platform-scoped; never hand one tenant another
	// tenant's event.
	if existing != nil && existing.TenantID != event.TenantID {
		s.log.Warn("External event id collision across tenants",
			zap.String("platform", string(event.Platform)),
			zap.String("external_event_id", event.ExternalEventID))
		return nil
	}
	return existing
}
