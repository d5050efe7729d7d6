package api

import (
	"context"
	"sync"
	"time"

	"github.com/clipbridge/clipbridge/internal/models"
)

// Lister is the subset of Client used by the caching wrapper.
type Lister interface {
	List(ctx context.Context, kind AssetKind) (models.VideoList, error)
	Delete(ctx context.Context, filePath string, kind AssetKind) (models.DeleteResult, error)
}

type listEntry struct {
	list    models.VideoList
	expires time.Time
}

// CachingLister wraps a Lister with a TTL-based in-memory cache so repeated
// library views do not refetch unchanged folder listings. Delete invalidates
// the affected kind.
type CachingLister struct {
	base Lister
	ttl  time.Duration

	mu    sync.RWMutex
	items map[AssetKind]listEntry
}

// NewCachingLister returns a Lister that caches listings for the provided TTL.
func NewCachingLister(base Lister, ttl time.Duration) *CachingLister {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingLister{
		base:  base,
		ttl:   ttl,
		items: make(map[AssetKind]listEntry),
	}
}

// List returns a cached listing when fresh, otherwise it delegates to the
// underlying client and stores the result.
func (c *CachingLister) List(ctx context.Context, kind AssetKind) (models.VideoList, error) {
	now := time.Now()

	c.mu.RLock()
	entry, ok := c.items[kind]
	c.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return entry.list, nil
	}

	list, err := c.base.List(ctx, kind)
	if err != nil {
		return models.VideoList{}, err
	}

	c.mu.Lock()
	c.items[kind] = listEntry{list: list, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return list, nil
}

// Delete removes a file through the underlying client and evicts the cached
// listing for that kind so the next List reflects the deletion.
func (c *CachingLister) Delete(ctx context.Context, filePath string, kind AssetKind) (models.DeleteResult, error) {
	result, err := c.base.Delete(ctx, filePath, kind)
	if err != nil {
		return result, err
	}

	c.mu.Lock()
	delete(c.items, kind)
	c.mu.Unlock()

	return result, nil
}
