package memory

import (
	"context"
	"sync"

	"github.com/postpulse/analytics-service/internal/domain"
)

// LookupRepository is an in-memory store of scheduled posts and content items,
// seeded by tests and local development setups.
type LookupRepository struct {
	mu    sync.RWMutex
	posts map[string]*domain.ScheduledPost
	items map[string]*domain.ContentItem
}

// NewLookupRepository creates an empty in-memory lookup repository.
func NewLookupRepository() *LookupRepository {
	return &LookupRepository{
		posts: make(map[string]*domain.ScheduledPost),
		items: make(map[string]*domain.ContentItem),
	}
}

// AddScheduledPost seeds a scheduled post.
func (r *LookupRepository) AddScheduledPost(post *domain.ScheduledPost) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *post
	r.posts[post.ID] = &cp
}

// AddContentItem seeds a content item.
func (r *LookupRepository) AddContentItem(item *domain.ContentItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
}

// GetScheduledPost returns a post by id within the tenant, or nil.
func (r *LookupRepository) GetScheduledPost(_ context.Context, tenantID, id string) (*domain.ScheduledPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok || post.TenantID != tenantID {
		return nil, nil
	}
	cp := *post
	return &cp, nil
}

// GetContentItem returns a content item by id within the tenant, or nil.
func (r *LookupRepository) GetContentItem(_ context.Context, tenantID, id string) (*domain.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || item.TenantID != tenantID {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}
