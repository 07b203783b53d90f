package consumer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/postpulse/analytics-service/internal/dto"
)

// webhookPayload is the wire shape delivered by the platform webhook intake.
type webhookPayload struct {
	TenantID        string            `json:"tenant_id"`
	EventType       string            `json:"event_type"`
	Platform        string            `json:"platform"`
	Value           *int64            `json:"value,omitempty"`
	ScheduledPostID string            `json:"scheduled_post_id,omitempty"`
	ContentItemID   string            `json:"content_item_id,omitempty"`
	ExternalEventID string            `json:"external_event_id,omitempty"`
	OccurredAt      time.Time         `json:"occurred_at,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// JSONWebhookParser implements MessageParser for JSON-formatted webhook messages
type JSONWebhookParser struct{}

// NewJSONWebhookParser creates a new JSON webhook parser
func NewJSONWebhookParser() *JSONWebhookParser {
	return &JSONWebhookParser{}
}

// Parse parses a JSON message body into an IncomingEvent
func (p *JSONWebhookParser) Parse(body []byte) (*IncomingEvent, error) {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if payload.TenantID == "" {
		return nil, fmt.Errorf("message is missing tenant_id")
	}
	if payload.EventType == "" {
		return nil, fmt.Errorf("message is missing event_type")
	}
	if payload.Platform == "" {
		return nil, fmt.Errorf("message is missing platform")
	}

	return &IncomingEvent{
		TenantID: payload.TenantID,
		Event: dto.RecordEventRequest{
			EventType:       payload.EventType,
			Platform:        payload.Platform,
			Value:           payload.Value,
			ScheduledPostID: payload.ScheduledPostID,
			ContentItemID:   payload.ContentItemID,
			ExternalEventID: payload.ExternalEventID,
			OccurredAt:      payload.OccurredAt,
			Metadata:        payload.Metadata,
		},
	}, nil
}
