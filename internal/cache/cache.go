// Package cache memoizes shaped public listings for a short window so
// repeated reads of the same query shape skip the store.
package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-places/internal/logging"
	"github.com/goliatone/go-places/internal/places"
	"github.com/goliatone/go-places/pkg/interfaces"
)

// DefaultTTL bounds how stale a cached page may get before it is refetched.
const DefaultTTL = 5 * time.Minute

// Fetcher loads one page of approved records from the underlying store.
type Fetcher interface {
	ListApproved(ctx context.Context, req places.ListApprovedRequest) (*places.ApprovedPage, error)
}

// FetcherFunc adapts a function to the Fetcher contract.
type FetcherFunc func(ctx context.Context, req places.ListApprovedRequest) (*places.ApprovedPage, error)

func (f FetcherFunc) ListApproved(ctx context.Context, req places.ListApprovedRequest) (*places.ApprovedPage, error) {
	return f(ctx, req)
}

// Result is the shaped page handed back to callers: display models for the
// requested language plus pagination metadata.
type Result struct {
	Places     []places.UiPlace  `json:"places"`
	Pagination places.Pagination `json:"pagination"`
}

type entry struct {
	result     Result
	language   places.Language
	capturedAt time.Time
}

// Key identifies one cached query shape.
type Key struct {
	Page     int
	Limit    int
	Search   string
	Language places.Language
}

// PlacesCache is the process-local read cache. Entries expire after the TTL
// and can be evicted wholesale or per language. Concurrent population of the
// same key is last-write-wins; pages are idempotently re-derivable so that
// is acceptable.
type PlacesCache struct {
	fetcher Fetcher
	logger  interfaces.Logger
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	entries map[Key]entry
}

// Option configures the cache at construction time.
type Option func(*PlacesCache)

// WithTTL overrides the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *PlacesCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the clock used to stamp and age entries.
func WithClock(clock func() time.Time) Option {
	return func(c *PlacesCache) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *PlacesCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs the cache around the given fetcher.
func New(fetcher Fetcher, opts ...Option) *PlacesCache {
	c := &PlacesCache{
		fetcher: fetcher,
		logger:  logging.NoOp(),
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[Key]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached page for the exact key when it is younger than the
// TTL; otherwise it fetches, shapes the rows for the requested language,
// stores the result with a fresh timestamp, and returns it.
func (c *PlacesCache) Get(ctx context.Context, page, limit int, search string, lang places.Language) (*Result, error) {
	key := Key{Page: page, Limit: limit, Search: search, Language: lang}

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(cached.capturedAt) < c.ttl {
		c.logger.Debug("cache hit", "page", page, "limit", limit, "language", string(lang))
		result := cached.result
		return &result, nil
	}

	fetched, err := c.fetcher.ListApproved(ctx, places.ListApprovedRequest{
		Page:     page,
		Limit:    limit,
		Search:   search,
		Language: lang,
	})
	if err != nil {
		return nil, err
	}

	result := Result{
		Places:     places.UiPlacesFromPlaces(fetched.Places, lang),
		Pagination: fetched.Pagination,
	}

	c.mu.Lock()
	c.entries[key] = entry{
		result:     result,
		language:   lang,
		capturedAt: c.now(),
	}
	c.mu.Unlock()

	return &result, nil
}

// Invalidate removes every entry shaped for the given language. Stale shapes
// are not reusable across languages, so a language switch evicts its slice
// of the cache.
func (c *PlacesCache) Invalidate(lang places.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, cached := range c.entries {
		if cached.language == lang {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll drops every entry.
func (c *PlacesCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]entry)
}

// Stats reports the current entry count and keys, for debugging.
type Stats struct {
	Size int
	Keys []Key
}

// Stats returns a snapshot of the cache contents.
func (c *PlacesCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]Key, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Language != keys[j].Language {
			return keys[i].Language < keys[j].Language
		}
		if keys[i].Page != keys[j].Page {
			return keys[i].Page < keys[j].Page
		}
		return keys[i].Search < keys[j].Search
	})
	return Stats{Size: len(keys), Keys: keys}
}
