// Package cache holds the in-process read cache for food posts.
package cache

import (
	"context"
	"sync"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodrescue_post_cache_hits_total",
		Help: "Total number of food post cache hits.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodrescue_post_cache_misses_total",
		Help: "Total number of food post cache misses.",
	})
)

// PostCache is a size-bounded LRU whose entries expire after ttl. Each instance owns its
// own cache; entries are evicted on every committed transition of the post.
//
// A read-through fill can race with a commit: the reader loads version n, the commit of
// n+1 invalidates, then the reader stores n. Invalidate records the committed version as a
// watermark and Set refuses anything older than it or older than the cached entry.
type PostCache struct {
	mu         sync.Mutex
	lru        *expirable.LRU[uuid.UUID, foodpost.FoodPost]
	watermarks *expirable.LRU[uuid.UUID, int64]
}

func NewPostCache(size int, ttl time.Duration) *PostCache {
	return &PostCache{
		lru:        expirable.NewLRU[uuid.UUID, foodpost.FoodPost](size, nil, ttl),
		watermarks: expirable.NewLRU[uuid.UUID, int64](size, nil, ttl),
	}
}

func (c *PostCache) Get(id uuid.UUID) (foodpost.FoodPost, bool) {
	post, ok := c.lru.Get(id)
	if ok {
		cacheHitsTotal.Inc()
		return post, true
	}
	cacheMissesTotal.Inc()
	return foodpost.FoodPost{}, false
}

// Set stores post unless a newer version has been committed or cached. It reports whether
// the post was stored.
func (c *PostCache) Set(post foodpost.FoodPost) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mark, ok := c.watermarks.Peek(post.ID()); ok && post.Version() < mark {
		return false
	}
	if cached, ok := c.lru.Peek(post.ID()); ok && post.Version() < cached.Version() {
		return false
	}
	c.lru.Add(post.ID(), post)
	return true
}

// Invalidate evicts the post and remembers that version has been committed.
func (c *PostCache) Invalidate(id uuid.UUID, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mark, ok := c.watermarks.Peek(id); !ok || version > mark {
		c.watermarks.Add(id, version)
	}
	c.lru.Remove(id)
}

func (c *PostCache) Len() int {
	return c.lru.Len()
}

// InvalidatingGateway evicts the post from the cache before forwarding the event.
type InvalidatingGateway struct {
	cache *PostCache
	next  shared.NotificationGateway
}

func NewInvalidatingGateway(cache *PostCache, next shared.NotificationGateway) *InvalidatingGateway {
	return &InvalidatingGateway{cache: cache, next: next}
}

func (g *InvalidatingGateway) Notify(ctx context.Context, event foodpost.Event) {
	g.cache.Invalidate(event.PostID, event.Version)
	g.next.Notify(ctx, event)
}
