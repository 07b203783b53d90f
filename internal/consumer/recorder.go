package consumer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/service"
)

// Recorder runs each envelope through the event recording flow. Validation
// failures are acked and dropped since redelivery cannot fix a bad payload;
// storage failures are nacked so the message is retried.
type Recorder struct {
	events service.EventServicer
	log    *zap.Logger
}

// NewRecorder creates a new recorder stage
func NewRecorder(events service.EventServicer, log *zap.Logger) *Recorder {
	return &Recorder{
		events: events,
		log:    log,
	}
}

// Start begins recording envelopes. Freshly recorded events are forwarded to
// the archive channel when one is provided.
func (r *Recorder) Start(ctx context.Context, in <-chan *Envelope, archive chan<- *domain.EngagementEvent) {
	if archive != nil {
		defer close(archive)
	}

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Recorder shutting down")
			return
		case envelope, ok := <-in:
			if !ok {
				r.log.Info("Recorder input channel closed")
				return
			}

			event := r.record(ctx, envelope)
			if event == nil || archive == nil {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case archive <- event:
				// Event sent to the archive writer
			}
		}
	}
}

// record processes a single envelope and returns the event when it was newly
// recorded.
func (r *Recorder) record(ctx context.Context, envelope *Envelope) *domain.EngagementEvent {
	incoming := envelope.Incoming

	outcome, err := r.events.RecordEvent(ctx, incoming.TenantID, &incoming.Event)
	if err != nil {
		if isUnrecordable(err) {
			r.log.Warn("Dropping unrecordable webhook event",
				zap.String("tenant_id", incoming.TenantID),
				zap.String("event_type", incoming.Event.EventType),
				zap.String("platform", incoming.Event.Platform),
				zap.Error(err))
			if ackErr := envelope.Ack(ctx); ackErr != nil {
				r.log.Error("Failed to ack dropped envelope", zap.Error(ackErr))
			}
			return nil
		}

		r.log.Error("Failed to record webhook event",
			zap.String("tenant_id", incoming.TenantID),
			zap.Error(err))
		if nackErr := envelope.Nack(ctx); nackErr != nil {
			r.log.Error("Failed to nack envelope", zap.Error(nackErr))
		}
		return nil
	}

	if err := envelope.Ack(ctx); err != nil {
		r.log.Error("Failed to ack envelope", zap.Error(err))
	}

	if outcome.Duplicate {
		return nil
	}
	return outcome.Event
}

// isUnrecordable reports whether the error is a payload problem that no
// amount of redelivery will cure.
func isUnrecordable(err error) bool {
	return errors.Is(err, domain.ErrUnknownEventType) ||
		errors.Is(err, domain.ErrUnknownPlatform) ||
		errors.Is(err, domain.ErrInvalidValue) ||
		errors.Is(err, domain.ErrMissingTenant)
}
