package domain

import "time"

// ScheduledPost is a read-only view of a platform posting instance, owned by
// the scheduling subsystem. The analytics core uses it for attribution and
// display enrichment only.
type ScheduledPost struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"tenant_id"`
	ContentItemID string     `json:"content_item_id"`
	Platform      Platform   `json:"platform"`
	Status        string     `json:"status"`
	ScheduledFor  time.Time  `json:"scheduled_for"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// ContentItem is a read-only view of generated marketing content.
type ContentItem struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
}
