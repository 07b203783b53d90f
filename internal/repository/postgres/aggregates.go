package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/repository"
)

// counterColumns whitelists the event type to column mapping. Column names
// are never taken from input.
var counterColumns = map[domain.EventType]string{
	domain.EventTypeView:       "views",
	domain.EventTypeLike:       "likes",
	domain.EventTypeComment:    "comments",
	domain.EventTypeShare:      "shares",
	domain.EventTypeClick:      "clicks",
	domain.EventTypeImpression: "impressions",
}

// AggregateRepository implements the daily rollup store on PostgreSQL. The
// increment is a single INSERT ... ON CONFLICT DO UPDATE statement so the
// read-modify-write cycle happens inside the database, never in application
// code; concurrent events for the same natural key serialize on the row.
type AggregateRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewAggregateRepository creates a PostgreSQL-backed aggregate store.
func NewAggregateRepository(pool *pgxpool.Pool, log *zap.Logger) *AggregateRepository {
	return &AggregateRepository{pool: pool, log: log}
}

// UpsertIncrement atomically creates or increments the row for the natural key.
// Rates are recomputed in SQL from the post-increment counters; numeric
// round() gives the same half-up behavior as domain.Round2.
func (r *AggregateRepository) UpsertIncrement(ctx context.Context, key domain.AggregateKey, eventType domain.EventType, value int64) (*domain.PostAnalyticsAggregate, error) {
	column, ok := counterColumns[eventType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEventType, eventType)
	}

	seed := &domain.PostAnalyticsAggregate{
		TenantID:        key.TenantID,
		ScheduledPostID: key.ScheduledPostID,
		Platform:        key.Platform,
		Date:            key.Date,
	}
	seed.Apply(eventType, value)

	query := fmt.Sprintf(`
		INSERT INTO post_analytics_aggregates (
			id, tenant_id, scheduled_post_id, platform, date,
			views, likes, comments, shares, clicks, impressions,
			engagement_rate, click_through_rate, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		ON CONFLICT (tenant_id, scheduled_post_id, platform, date) DO UPDATE SET
			%[1]s = post_analytics_aggregates.%[1]s + EXCLUDED.%[1]s,
			engagement_rate = CASE
				WHEN post_analytics_aggregates.impressions + EXCLUDED.impressions = 0 THEN 0
				ELSE round(100.0 * (
						post_analytics_aggregates.likes + EXCLUDED.likes +
						post_analytics_aggregates.comments + EXCLUDED.comments +
						post_analytics_aggregates.shares + EXCLUDED.shares
					)::numeric / (post_analytics_aggregates.impressions + EXCLUDED.impressions), 2)
			END,
			click_through_rate = CASE
				WHEN post_analytics_aggregates.impressions + EXCLUDED.impressions = 0 THEN 0
				ELSE round(100.0 * (post_analytics_aggregates.clicks + EXCLUDED.clicks)::numeric
					/ (post_analytics_aggregates.impressions + EXCLUDED.impressions), 2)
			END,
			updated_at = EXCLUDED.updated_at
		RETURNING id, tenant_id, scheduled_post_id, platform, date,
			views, likes, comments, shares, clicks, impressions,
			engagement_rate, click_through_rate, unique_viewers, reach,
			created_at, updated_at
	`, column)

	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		key.TenantID,
		key.ScheduledPostID,
		string(key.Platform),
		key.Date,
		seed.Views, seed.Likes, seed.Comments, seed.Shares, seed.Clicks, seed.Impressions,
		seed.EngagementRate, seed.ClickThroughRate,
		now,
	)

	agg, err := scanAggregate(row)
	if err != nil {
		return nil, translateConflict(fmt.Errorf("failed to upsert aggregate: %w", err))
	}
	return agg, nil
}

// Query returns the aggregate rows matching the filter, date descending then
// row id ascending.
func (r *AggregateRepository) Query(ctx context.Context, filter repository.AggregateFilter) ([]*domain.PostAnalyticsAggregate, error) {
	query := `
		SELECT id, tenant_id, scheduled_post_id, platform, date,
		       views, likes, comments, shares, clicks, impressions,
		       engagement_rate, click_through_rate, unique_viewers, reach,
		       created_at, updated_at
		FROM post_analytics_aggregates
		WHERE tenant_id = $1`
	args := []any{filter.TenantID}

	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.Platform != "" {
		args = append(args, string(filter.Platform))
		query += fmt.Sprintf(" AND platform = $%d", len(args))
	}
	query += " ORDER BY date DESC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregates: %w", err)
	}
	defer rows.Close()

	var aggregates []*domain.PostAnalyticsAggregate
	for rows.Next() {
		agg, err := scanAggregate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		aggregates = append(aggregates, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregate rows: %w", err)
	}

	return aggregates, nil
}

// Ping checks database connectivity.
func (r *AggregateRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close is a no-op; the pool is shared and closed by the owner.
func (r *AggregateRepository) Close() error { return nil }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAggregate(row rowScanner) (*domain.PostAnalyticsAggregate, error) {
	var (
		agg      domain.PostAnalyticsAggregate
		platform string
		date     time.Time
	)

	err := row.Scan(
		&agg.ID, &agg.TenantID, &agg.ScheduledPostID, &platform, &date,
		&agg.Views, &agg.Likes, &agg.Comments, &agg.Shares, &agg.Clicks, &agg.Impressions,
		&agg.EngagementRate, &agg.ClickThroughRate, &agg.UniqueViewers, &agg.Reach,
		&agg.CreatedAt, &agg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	agg.Platform = domain.Platform(platform)
	agg.Date = date.Format(domain.DateLayout)
	return &agg, nil
}

// translateConflict maps transient serialization failures onto
// domain.ErrConflict so the updater can retry them.
func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
	}
	return err
}
