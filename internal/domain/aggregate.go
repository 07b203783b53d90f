package domain

import (
	"math"
	"time"
)

// DateLayout is the calendar-date format used in aggregate natural keys.
const DateLayout = "2006-01-02"

// DateOf returns the UTC calendar date for a timestamp. Aggregate rows are
// keyed by the ingestion date, not the engagement's occurred-at time.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// AggregateKey is the natural key of a daily rollup row. TenantID is part of
// the key everywhere: aggregates never mix tenants.
type AggregateKey struct {
	TenantID        string
	ScheduledPostID string
	Platform        Platform
	Date            string
}

// PostAnalyticsAggregate is the mutable daily rollup for one
// (tenant, scheduled post, platform, date) key. Raw counters only grow within
// a day; both rates are recomputed from the counters on every update and are
// never stored stale.
type PostAnalyticsAggregate struct {
	ID              string   `json:"id"`
	TenantID        string   `json:"tenant_id"`
	ScheduledPostID string   `json:"scheduled_post_id"`
	Platform        Platform `json:"platform"`
	Date            string   `json:"date"`

	Views       int64 `json:"views"`
	Likes       int64 `json:"likes"`
	Comments    int64 `json:"comments"`
	Shares      int64 `json:"shares"`
	Clicks      int64 `json:"clicks"`
	Impressions int64 `json:"impressions"`

	EngagementRate   float64 `json:"engagement_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`

	// Populated by platform sync, not by the event pipeline.
	UniqueViewers int64 `json:"unique_viewers"`
	Reach         int64 `json:"reach"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the natural key of the row.
func (a *PostAnalyticsAggregate) Key() AggregateKey {
	return AggregateKey{
		TenantID:        a.TenantID,
		ScheduledPostID: a.ScheduledPostID,
		Platform:        a.Platform,
		Date:            a.Date,
	}
}

// Apply increments the counter matching the event type by value and recomputes
// both derived rates from the post-increment counters.
func (a *PostAnalyticsAggregate) Apply(t EventType, value int64) {
	switch t {
	case EventTypeView:
		a.Views += value
	case EventTypeLike:
		a.Likes += value
	case EventTypeComment:
		a.Comments += value
	case EventTypeShare:
		a.Shares += value
	case EventTypeClick:
		a.Clicks += value
	case EventTypeImpression:
		a.Impressions += value
	}
	a.RecalcRates()
}

// RecalcRates recomputes engagement and click-through rates. Zero impressions
// yields 0 for both, never NaN. Rates are not clamped to 100: inconsistent
// platform reports (clicks > impressions) surface as-is so callers can flag
// data quality instead of silently losing the signal.
func (a *PostAnalyticsAggregate) RecalcRates() {
	if a.Impressions == 0 {
		a.EngagementRate = 0
		a.ClickThroughRate = 0
		return
	}
	imp := float64(a.Impressions)
	a.EngagementRate = Round2(100 * float64(a.Likes+a.Comments+a.Shares) / imp)
	a.ClickThroughRate = Round2(100 * float64(a.Clicks) / imp)
}

// Round2 rounds to two decimal places, half up. Counters are non-negative so
// the floor form is sufficient.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Metric names a rankable aggregate column.
type Metric string

const (
	MetricViews            Metric = "views"
	MetricLikes            Metric = "likes"
	MetricComments         Metric = "comments"
	MetricShares           Metric = "shares"
	MetricClicks           Metric = "clicks"
	MetricImpressions      Metric = "impressions"
	MetricEngagementRate   Metric = "engagementRate"
	MetricClickThroughRate Metric = "clickThroughRate"
)

var metrics = map[Metric]bool{
	MetricViews:            true,
	MetricLikes:            true,
	MetricComments:         true,
	MetricShares:           true,
	MetricClicks:           true,
	MetricImpressions:      true,
	MetricEngagementRate:   true,
	MetricClickThroughRate: true,
}

// ParseMetric maps a raw string onto a rankable metric. Unrecognized names
// fall back to engagement rate rather than failing the query.
func ParseMetric(s string) Metric {
	m := Metric(s)
	if !metrics[m] {
		return MetricEngagementRate
	}
	return m
}

// MetricValue returns the row's value for a ranking metric.
func (a *PostAnalyticsAggregate) MetricValue(m Metric) float64 {
	switch m {
	case MetricViews:
		return float64(a.Views)
	case MetricLikes:
		return float64(a.Likes)
	case MetricComments:
		return float64(a.Comments)
	case MetricShares:
		return float64(a.Shares)
	case MetricClicks:
		return float64(a.Clicks)
	case MetricImpressions:
		return float64(a.Impressions)
	case MetricClickThroughRate:
		return a.ClickThroughRate
	default:
		return a.EngagementRate
	}
}
