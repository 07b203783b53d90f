package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/dto"
	"github.com/postpulse/analytics-service/internal/repository/memory"
)

type analyticsFixture struct {
	service    *AnalyticsService
	aggregates *memory.AggregateRepository
	lookups    *memory.LookupRepository
}

func newAnalyticsFixture() *analyticsFixture {
	aggregates := memory.NewAggregateRepository()
	lookups := memory.NewLookupRepository()
	return &analyticsFixture{
		service:    NewAnalyticsService(aggregates, lookups, nil, zap.NewNop()),
		aggregates: aggregates,
		lookups:    lookups,
	}
}

func (f *analyticsFixture) seedRow(t *testing.T, tenant, post string, platform domain.Platform, date string, counters map[domain.EventType]int64) {
	t.Helper()
	ctx := context.Background()
	key := domain.AggregateKey{TenantID: tenant, ScheduledPostID: post, Platform: platform, Date: date}
	for eventType, value := range counters {
		_, err := f.aggregates.UpsertIncrement(ctx, key, eventType, value)
		require.NoError(t, err)
	}
}

func TestGetOverview_Empty(t *testing.T) {
	f := newAnalyticsFixture()

	resp, err := f.service.GetOverview(context.Background(), "t1", &dto.OverviewRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Totals.Views)
	assert.Equal(t, float64(0), resp.Averages.EngagementRate)
	assert.Empty(t, resp.ByPlatform)
	assert.NotNil(t, resp.ByPlatform)
}

func TestGetOverview_TotalsAndBreakdown(t *testing.T) {
	f := newAnalyticsFixture()
	f.seedRow(t, "t1", "sp1", domain.PlatformInstagram, "2026-08-28", map[domain.EventType]int64{
		domain.EventTypeImpression: 1000,
		domain.EventTypeLike:       50,
		domain.EventTypeComment:    10,
		domain.EventTypeShare:      5,
		domain.EventTypeClick:      20,
	})
	f.seedRow(t, "t1", "sp2", domain.PlatformFacebook, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeImpression: 500,
		domain.EventTypeLike:       25,
		domain.EventTypeClick:      10,
	})

	resp, err := f.service.GetOverview(context.Background(), "t1", &dto.OverviewRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(1500), resp.Totals.Impressions)
	assert.Equal(t, int64(75), resp.Totals.Likes)
	assert.Equal(t, int64(30), resp.Totals.Clicks)

	// Row rates are 6.5/2.0 and 5.0/2.0; averages are per-row means.
	assert.InDelta(t, 5.75, resp.Averages.EngagementRate, 1e-9)
	assert.InDelta(t, 2.0, resp.Averages.ClickThroughRate, 1e-9)

	require.Len(t, resp.ByPlatform, 2)
	// Sorted by platform name.
	assert.Equal(t, "facebook", resp.ByPlatform[0].Platform)
	assert.Equal(t, "instagram", resp.ByPlatform[1].Platform)
	assert.Equal(t, int64(500), resp.ByPlatform[0].Impressions)
	assert.Equal(t, 1, resp.ByPlatform[0].PostsCount)
}

func TestGetOverview_PerRowMeanNotWeighted(t *testing.T) {
	f := newAnalyticsFixture()
	// A tiny row with a huge rate and a huge row with a tiny rate weigh
	// equally in the average.
	f.seedRow(t, "t1", "sp1", domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeImpression: 10,
		domain.EventTypeLike:       5, // 50.00
	})
	f.seedRow(t, "t1", "sp2", domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeImpression: 10000,
		domain.EventTypeLike:       100, // 1.00
	})

	resp, err := f.service.GetOverview(context.Background(), "t1", &dto.OverviewRequest{})
	require.NoError(t, err)
	assert.InDelta(t, 25.5, resp.Averages.EngagementRate, 1e-9)
}

func TestGetOverview_TenantIsolation(t *testing.T) {
	f := newAnalyticsFixture()
	f.seedRow(t, "t1", "sp1", domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeView: 10,
	})
	f.seedRow(t, "t2", "sp1", domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeView: 99,
	})

	resp, err := f.service.GetOverview(context.Background(), "t1", &dto.OverviewRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Totals.Views)
}

func TestGetOverview_DateValidation(t *testing.T) {
	f := newAnalyticsFixture()
	ctx := context.Background()

	_, err := f.service.GetOverview(ctx, "t1", &dto.OverviewRequest{StartDate: "29-08-2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = f.service.GetOverview(ctx, "t1", &dto.OverviewRequest{EndDate: "not-a-date"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = f.service.GetOverview(ctx, "t1", &dto.OverviewRequest{
		StartDate: "2026-08-29",
		EndDate:   "2026-08-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = f.service.GetOverview(ctx, "t1", &dto.OverviewRequest{Platform: "friendster"})
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)

	_, err = f.service.GetOverview(ctx, "", &dto.OverviewRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingTenant)
}

func TestGetTopPosts_RankedAndLimited(t *testing.T) {
	f := newAnalyticsFixture()
	for i, views := range []int64{50, 200, 10} {
		post := []string{"sp1", "sp2", "sp3"}[i]
		f.seedRow(t, "t1", post, domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
			domain.EventTypeView: views,
		})
	}

	resp, err := f.service.GetTopPosts(context.Background(), "t1", &dto.TopPostsRequest{
		Metric: "views",
		Limit:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, "views", resp.Metric)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "sp2", resp.Posts[0].ScheduledPostID)
	assert.Equal(t, int64(200), resp.Posts[0].Metrics.Views)
	assert.Equal(t, "sp1", resp.Posts[1].ScheduledPostID)
}

func TestGetTopPosts_TieBreaksOnDateThenID(t *testing.T) {
	f := newAnalyticsFixture()
	f.seedRow(t, "t1", "sp1", domain.PlatformInstagram, "2026-08-27", map[domain.EventType]int64{
		domain.EventTypeView: 100,
	})
	f.seedRow(t, "t1", "sp2", domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeView: 100,
	})

	resp, err := f.service.GetTopPosts(context.Background(), "t1", &dto.TopPostsRequest{Metric: "views"})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)
	// Equal metric values rank the newer row first.
	assert.Equal(t, "2026-08-29", resp.Posts[0].Date)
	assert.Equal(t, "2026-08-27", resp.Posts[1].Date)
}

func TestGetTopPosts_UnknownMetricFallsBack(t *testing.T) {
	f := newAnalyticsFixture()
	f.seedRow(t, "t1", "sp1", domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeImpression: 100,
		domain.EventTypeLike:       10,
	})

	resp, err := f.service.GetTopPosts(context.Background(), "t1", &dto.TopPostsRequest{Metric: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, "engagementRate", resp.Metric)
	require.Len(t, resp.Posts, 1)
}

func TestGetTopPosts_DefaultAndCappedLimit(t *testing.T) {
	f := newAnalyticsFixture()
	for i := 0; i < 15; i++ {
		f.seedRow(t, "t1", "sp"+string(rune('a'+i)), domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
			domain.EventTypeView: int64(i + 1),
		})
	}

	resp, err := f.service.GetTopPosts(context.Background(), "t1", &dto.TopPostsRequest{Metric: "views"})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, defaultTopPostsLimit)

	resp, err = f.service.GetTopPosts(context.Background(), "t1", &dto.TopPostsRequest{Metric: "views", Limit: 5000})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 15)
}

func TestGetTopPosts_Enrichment(t *testing.T) {
	f := newAnalyticsFixture()
	publishedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	f.lookups.AddScheduledPost(&domain.ScheduledPost{
		ID:            "sp1",
		TenantID:      "t1",
		ContentItemID: "ci1",
		Platform:      domain.PlatformInstagram,
		Status:        "published",
		ScheduledFor:  publishedAt,
		PublishedAt:   &publishedAt,
	})
	f.lookups.AddContentItem(&domain.ContentItem{
		ID:          "ci1",
		TenantID:    "t1",
		Title:       "Launch announcement",
		Body:        strings.Repeat("x", 500),
		ContentType: "post",
	})
	f.seedRow(t, "t1", "sp1", domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeView: 10,
	})

	resp, err := f.service.GetTopPosts(context.Background(), "t1", &dto.TopPostsRequest{Metric: "views"})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)

	entry := resp.Posts[0]
	assert.Equal(t, "ci1", entry.ContentItemID)
	require.NotNil(t, entry.Schedule)
	assert.Equal(t, "published", entry.Schedule.Status)
	require.NotNil(t, entry.Content)
	assert.Equal(t, "Launch announcement", entry.Content.Title)
	assert.Len(t, []rune(entry.Content.Excerpt), excerptMaxLen+1)
}

func TestGetTopPosts_MissingLookupsLeaveEntryBare(t *testing.T) {
	f := newAnalyticsFixture()
	f.seedRow(t, "t1", "sp1", domain.PlatformInstagram, "2026-08-29", map[domain.EventType]int64{
		domain.EventTypeView: 10,
	})

	resp, err := f.service.GetTopPosts(context.Background(), "t1", &dto.TopPostsRequest{Metric: "views"})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Nil(t, resp.Posts[0].Schedule)
	assert.Nil(t, resp.Posts[0].Content)
}
