package domain

import (
	"fmt"
	"time"
)

// EventType is the closed set of engagement interactions the pipeline accepts.
type EventType string

const (
	EventTypeView       EventType = "view"
	EventTypeLike       EventType = "like"
	EventTypeComment    EventType = "comment"
	EventTypeShare      EventType = "share"
	EventTypeClick      EventType = "click"
	EventTypeImpression EventType = "impression"
)

var eventTypes = map[EventType]bool{
	EventTypeView:       true,
	EventTypeLike:       true,
	EventTypeComment:    true,
	EventTypeShare:      true,
	EventTypeClick:      true,
	EventTypeImpression: true,
}

// ParseEventType validates a raw string against the closed event type set.
func ParseEventType(s string) (EventType, error) {
	t := EventType(s)
	if !eventTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
	}
	return t, nil
}

// Platform identifies a connected social platform.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

var platforms = map[Platform]bool{
	PlatformFacebook:  true,
	PlatformInstagram: true,
	PlatformTwitter:   true,
	PlatformLinkedIn:  true,
	PlatformTikTok:    true,
	PlatformYouTube:   true,
}

// ParsePlatform validates a raw string against the known platform set.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !platforms[p] {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// EngagementEvent is one immutable record of a single interaction. Events are
// append-only: once written they are never mutated or deleted, and the
// aggregate pipeline is the only reader.
type EngagementEvent struct {
	ID              string            `json:"id"`
	TenantID        string            `json:"tenant_id"`
	ContentItemID   string            `json:"content_item_id,omitempty"`
	ScheduledPostID string            `json:"scheduled_post_id,omitempty"`
	EventType       EventType         `json:"event_type"`
	Platform        Platform          `json:"platform"`
	Value           int64             `json:"value"`
	ExternalEventID string            `json:"external_event_id,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	OccurredAt      time.Time         `json:"occurred_at"`
	RecordedAt      time.Time         `json:"recorded_at"`
}
