package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/postpulse/analytics-service/internal/domain"
)

// LookupRepository reads the scheduled post and content item tables owned by
// the scheduling and content subsystems. All lookups are tenant-scoped.
type LookupRepository struct {
	pool *pgxpool.Pool
}

// NewLookupRepository creates a PostgreSQL-backed lookup repository.
func NewLookupRepository(pool *pgxpool.Pool) *LookupRepository {
	return &LookupRepository{pool: pool}
}

// GetScheduledPost returns a scheduled post by id within the tenant, or nil
// when it does not exist there.
func (r *LookupRepository) GetScheduledPost(ctx context.Context, tenantID, id string) (*domain.ScheduledPost, error) {
	var (
		post     domain.ScheduledPost
		platform string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, content_item_id, platform, status, scheduled_for, published_at
		FROM scheduled_posts
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id).Scan(
		&post.ID, &post.TenantID, &post.ContentItemID, &platform,
		&post.Status, &post.ScheduledFor, &post.PublishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled post: %w", err)
	}

	post.Platform = domain.Platform(platform)
	return &post, nil
}

// GetContentItem returns a content item by id within the tenant, or nil when
// it does not exist there.
func (r *LookupRepository) GetContentItem(ctx context.Context, tenantID, id string) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, title, body, content_type
		FROM content_items
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id).Scan(&item.ID, &item.TenantID, &item.Title, &item.Body, &item.ContentType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}

	return &item, nil
}
