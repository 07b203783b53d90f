package consumer

import (
	"context"

	"github.com/postpulse/analytics-service/internal/dto"
)

// IncomingEvent is one parsed webhook delivery: the tenant it belongs to and
// the event submission to record.
type IncomingEvent struct {
	TenantID string                 `json:"tenant_id"`
	Event    dto.RecordEventRequest `json:"event"`
}

// Envelope wraps an incoming event with acknowledgment callbacks.
type Envelope struct {
	Incoming *IncomingEvent
	ack      func(context.Context) error
	nack     func(context.Context) error
}

// NewEnvelope creates a new message envelope.
func NewEnvelope(incoming *IncomingEvent, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		Incoming: incoming,
		ack:      ack,
		nack:     nack,
	}
}

// Ack acknowledges successful processing.
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack != nil {
		return e.ack(ctx)
	}
	return nil
}

// Nack negatively acknowledges processing; the message becomes visible again
// for redelivery.
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack != nil {
		return e.nack(ctx)
	}
	return nil
}
