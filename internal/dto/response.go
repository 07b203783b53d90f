package dto

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"unknown event type"`
}

// RecordEventResponse represents a successful event ingestion response.
type RecordEventResponse struct {
	EventID string `json:"event_id" example:"5f8aef0e-5b0f-4c77-9a5e-3d2f1a6b9c01"`
	Status  string `json:"status" example:"recorded"`
}

// RecordEventsBulkResponse represents a bulk ingestion response.
type RecordEventsBulkResponse struct {
	Recorded int      `json:"recorded" example:"5"`
	Rejected int      `json:"rejected" example:"0"`
	EventIDs []string `json:"event_ids,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// MetricTotals holds summed raw counters across all matched aggregate rows.
type MetricTotals struct {
	Views       int64 `json:"views" example:"5000"`
	Likes       int64 `json:"likes" example:"320"`
	Comments    int64 `json:"comments" example:"45"`
	Shares      int64 `json:"shares" example:"18"`
	Clicks      int64 `json:"clicks" example:"230"`
	Impressions int64 `json:"impressions" example:"12000"`
	Reach       int64 `json:"reach" example:"8000"`
}

// MetricAverages holds the per-row arithmetic means of the derived rates.
type MetricAverages struct {
	EngagementRate   float64 `json:"engagement_rate" example:"3.19"`
	ClickThroughRate float64 `json:"click_through_rate" example:"1.92"`
}

// PlatformBreakdown holds per-platform counter sums.
type PlatformBreakdown struct {
	Platform    string `json:"platform" example:"instagram"`
	Views       int64  `json:"views"`
	Likes       int64  `json:"likes"`
	Comments    int64  `json:"comments"`
	Shares      int64  `json:"shares"`
	Clicks      int64  `json:"clicks"`
	Impressions int64  `json:"impressions"`
	PostsCount  int    `json:"posts_count" example:"12"`
}

// OverviewResponse represents the analytics overview.
type OverviewResponse struct {
	Totals     MetricTotals        `json:"totals"`
	Averages   MetricAverages      `json:"averages"`
	ByPlatform []PlatformBreakdown `json:"by_platform"`
}

// AggregateMetrics is the full metrics block of one aggregate row.
type AggregateMetrics struct {
	Views            int64   `json:"views"`
	Likes            int64   `json:"likes"`
	Comments         int64   `json:"comments"`
	Shares           int64   `json:"shares"`
	Clicks           int64   `json:"clicks"`
	Impressions      int64   `json:"impressions"`
	EngagementRate   float64 `json:"engagement_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
}

// ContentSummary is display enrichment from the related content item.
type ContentSummary struct {
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// ScheduleInfo is display enrichment from the related scheduled post.
type ScheduleInfo struct {
	Status       string     `json:"status"`
	ScheduledFor time.Time  `json:"scheduled_for"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// TopPostEntry is one ranked row in the top posts response.
type TopPostEntry struct {
	ScheduledPostID string           `json:"scheduled_post_id"`
	ContentItemID   string           `json:"content_item_id,omitempty"`
	Platform        string           `json:"platform"`
	Date            string           `json:"date"`
	Metrics         AggregateMetrics `json:"metrics"`
	Content         *ContentSummary  `json:"content,omitempty"`
	Schedule        *ScheduleInfo    `json:"schedule,omitempty"`
}

// TopPostsResponse represents the top posts ranking.
type TopPostsResponse struct {
	Metric string         `json:"metric" example:"engagementRate"`
	Posts  []TopPostEntry `json:"posts"`
}

// WebhookAcceptedResponse acknowledges an enqueued webhook payload.
type WebhookAcceptedResponse struct {
	Status string `json:"status" example:"enqueued"`
}
