package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/dto"
	"github.com/postpulse/analytics-service/internal/metrics"
	"github.com/postpulse/analytics-service/internal/repository"
)

const (
	defaultTopPostsLimit = 10
	maxTopPostsLimit     = 100
	excerptMaxLen        = 140
)

// AnalyticsService answers the two dashboard read patterns over persisted
// aggregate rows. It never reads the raw event log.
type AnalyticsService struct {
	aggregates repository.AggregateRepository
	lookups    repository.LookupRepository
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewAnalyticsService creates the read-side service. m may be nil.
func NewAnalyticsService(
	aggregates repository.AggregateRepository,
	lookups repository.LookupRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		aggregates: aggregates,
		lookups:    lookups,
		metrics:    m,
		log:        log,
	}
}

// GetOverview returns counter totals, rate averages, and a per-platform
// breakdown over the tenant's aggregate rows in the filter window.
//
// Averages are the arithmetic mean of per-row rates, not a recomputation from
// summed counters: every (post, platform, day) row weighs equally regardless
// of its impression volume. This preserves the reporting semantics dashboards
// were built against; see DESIGN.md for the trade-off against
// impression-weighted averaging.
func (s *AnalyticsService) GetOverview(ctx context.Context, tenantID string, req *dto.OverviewRequest) (*dto.OverviewResponse, error) {
	defer s.observe("overview", time.Now())

	filter, err := buildFilter(tenantID, req.StartDate, req.EndDate, req.Platform)
	if err != nil {
		return nil, err
	}

	rows, err := s.aggregates.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregates: %w", err)
	}

	resp := &dto.OverviewResponse{
		ByPlatform: []dto.PlatformBreakdown{},
	}

	groups := make(map[domain.Platform]*dto.PlatformBreakdown)
	var sumEngagement, sumClickThrough float64

	for _, row := range rows {
		resp.Totals.Views += row.Views
		resp.Totals.Likes += row.Likes
		resp.Totals.Comments += row.Comments
		resp.Totals.Shares += row.Shares
		resp.Totals.Clicks += row.Clicks
		resp.Totals.Impressions += row.Impressions
		resp.Totals.Reach += row.Reach

		sumEngagement += row.EngagementRate
		sumClickThrough += row.ClickThroughRate

		group, ok := groups[row.Platform]
		if !ok {
			group = &dto.PlatformBreakdown{Platform: string(row.Platform)}
			groups[row.Platform] = group
		}
		group.Views += row.Views
		group.Likes += row.Likes
		group.Comments += row.Comments
		group.Shares += row.Shares
		group.Clicks += row.Clicks
		group.Impressions += row.Impressions
		group.PostsCount++
	}

	if len(rows) > 0 {
		n := float64(len(rows))
		resp.Averages.EngagementRate = domain.Round2(sumEngagement / n)
		resp.Averages.ClickThroughRate = domain.Round2(sumClickThrough / n)
	}

	for _, group := range groups {
		resp.ByPlatform = append(resp.ByPlatform, *group)
	}
	sort.Slice(resp.ByPlatform, func(i, j int) bool {
		return resp.ByPlatform[i].Platform < resp.ByPlatform[j].Platform
	})

	return resp, nil
}

// GetTopPosts returns up to limit aggregate rows ranked descending by the
// requested metric, enriched with content and schedule details for display.
// Ties break on date descending, then row id, so pagination stays stable.
func (s *AnalyticsService) GetTopPosts(ctx context.Context, tenantID string, req *dto.TopPostsRequest) (*dto.TopPostsResponse, error) {
	defer s.observe("top_posts", time.Now())

	filter, err := buildFilter(tenantID, req.StartDate, req.EndDate, req.Platform)
	if err != nil {
		return nil, err
	}

	metric := domain.ParseMetric(req.Metric)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultTopPostsLimit
	}
	if limit > maxTopPostsLimit {
		limit = maxTopPostsLimit
	}

	rows, err := s.aggregates.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregates: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := rows[i].MetricValue(metric), rows[j].MetricValue(metric)
		if vi != vj {
			return vi > vj
		}
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].ID < rows[j].ID
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}

	resp := &dto.TopPostsResponse{
		Metric: string(metric),
		Posts:  make([]dto.TopPostEntry, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Posts = append(resp.Posts, s.buildEntry(ctx, row))
	}

	return resp, nil
}

func (s *AnalyticsService) buildEntry(ctx context.Context, row *domain.PostAnalyticsAggregate) dto.TopPostEntry {
	entry := dto.TopPostEntry{
		ScheduledPostID: row.ScheduledPostID,
		Platform:        string(row.Platform),
		Date:            row.Date,
		Metrics: dto.AggregateMetrics{
			Views:            row.Views,
			Likes:            row.Likes,
			Comments:         row.Comments,
			Shares:           row.Shares,
			Clicks:           row.Clicks,
			Impressions:      row.Impressions,
			EngagementRate:   row.EngagementRate,
			ClickThroughRate: row.ClickThroughRate,
		},
	}

	post, err := s.lookups.GetScheduledPost(ctx, row.TenantID, row.ScheduledPostID)
	if err != nil {
		s.log.Warn("Scheduled post lookup failed during enrichment",
			zap.String("scheduled_post_id", row.ScheduledPostID),
			zap.Error(err))
		return entry
	}
	if post == nil {
		return entry
	}

	entry.ContentItemID = post.ContentItemID
	entry.Schedule = &dto.ScheduleInfo{
		Status:       post.Status,
		ScheduledFor: post.ScheduledFor,
		PublishedAt:  post.PublishedAt,
	}

	item, err := s.lookups.GetContentItem(ctx, row.TenantID, post.ContentItemID)
	if err != nil {
		s.log.Warn("Content item lookup failed during enrichment",
			zap.String("content_item_id", post.ContentItemID),
			zap.Error(err))
		return entry
	}
	if item != nil {
		entry.Content = &dto.ContentSummary{
			Title:       item.Title,
			Excerpt:     excerpt(item.Body),
			ContentType: item.ContentType,
		}
	}

	return entry
}

func (s *AnalyticsService) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

func buildFilter(tenantID, startDate, endDate, platform string) (repository.AggregateFilter, error) {
	var filter repository.AggregateFilter

	if tenantID == "" {
		return filter, domain.ErrMissingTenant
	}
	filter.TenantID = tenantID

	if startDate != "" {
		if _, err := time.Parse(domain.DateLayout, startDate); err != nil {
			return filter, fmt.Errorf("%w: bad start_date %q", domain.ErrInvalidDateRange, startDate)
		}
		filter.StartDate = startDate
	}
	if endDate != "" {
		if _, err := time.Parse(domain.DateLayout, endDate); err != nil {
			return filter, fmt.Errorf("%w: bad end_date %q", domain.ErrInvalidDateRange, endDate)
		}
		filter.EndDate = endDate
	}
	if filter.StartDate != "" && filter.EndDate != "" && filter.StartDate > filter.EndDate {
		return filter, fmt.Errorf("%w: start_date after end_date", domain.ErrInvalidDateRange)
	}

	if platform != "" {
		p, err := domain.ParsePlatform(platform)
		if err != nil {
			return filter, err
		}
		filter.Platform = p
	}

	return filter, nil
}

func excerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= excerptMaxLen {
		return body
	}
	return string(runes[:excerptMaxLen]) + "…"
}
