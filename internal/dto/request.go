package dto

import "time"

// RecordEventRequest represents a single engagement event submission.
type RecordEventRequest struct {
	EventType       string            `json:"event_type" binding:"required" example:"like"`
	Platform        string            `json:"platform" binding:"required" example:"instagram"`
	Value           *int64            `json:"value,omitempty" example:"1"`
	ContentItemID   string            `json:"content_item_id,omitempty" example:"ci_42"`
	ScheduledPostID string            `json:"scheduled_post_id,omitempty" example:"sp_981"`
	ExternalEventID string            `json:"external_event_id,omitempty" example:"ig_evt_7731"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	OccurredAt      time.Time         `json:"occurred_at,omitempty"`
}

// RecordEventsBulkRequest represents a bulk event submission.
type RecordEventsBulkRequest struct {
	Events []RecordEventRequest `json:"events" binding:"required,min=1,max=1000,dive"`
}

// OverviewRequest represents an analytics overview query.
type OverviewRequest struct {
	StartDate string `form:"start_date" example:"2026-08-01"`
	EndDate   string `form:"end_date" example:"2026-08-29"`
	Platform  string `form:"platform" example:"instagram"`
}

// TopPostsRequest represents a top posts ranking query.
type TopPostsRequest struct {
	Metric    string `form:"metric" example:"engagementRate"`
	Limit     int    `form:"limit" example:"10"`
	Platform  string `form:"platform" example:"instagram"`
	StartDate string `form:"start_date" example:"2026-08-01"`
	EndDate   string `form:"end_date" example:"2026-08-29"`
}
