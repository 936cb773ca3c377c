// Package content serves the current reference text to typing sessions.
//
// A Cache holds exactly one live Content plus the time of the last refresh
// attempt. Reads that arrive within the refresh interval are served from
// memory; the first read after the interval refreshes through the injected
// Fetcher. The staleness check, the timestamp update and the fetch all run
// under one mutex, so concurrent readers never trigger more than one fetch per
// interval. A failed fetch keeps the previous content and still counts as an
// attempt.
package content

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/verte-zerg/typeboard/internal/clock"
	"github.com/verte-zerg/typeboard/internal/model"
)

// DefaultRefreshInterval is the minimum time between refresh attempts.
const DefaultRefreshInterval = time.Hour

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used by Get.
func WithClock(c clock.Clock) Option {
	return func(cache *Cache) {
		if c != nil {
			cache.clock = c
		}
	}
}

// WithInterval sets the refresh interval. Values under one second are ignored.
func WithInterval(d time.Duration) Option {
	return func(cache *Cache) {
		if d >= time.Second {
			cache.interval = int64(d / time.Second)
		}
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cache *Cache) {
		if logger != nil {
			cache.logger = logger
		}
	}
}

// WithDefault replaces the built-in fallback content.
func WithDefault(c model.Content) Option {
	return func(cache *Cache) {
		cache.fallback = c
	}
}

// WithStripPunctuation controls whether fetched bodies lose , . : and ;.
func WithStripPunctuation(strip bool) Option {
	return func(cache *Cache) {
		cache.stripPunct = strip
	}
}

// Cache is a process-wide, concurrency-safe holder of the current Content.
type Cache struct {
	fetcher    Fetcher
	clock      clock.Clock
	interval   int64
	logger     *slog.Logger
	fallback   model.Content
	stripPunct bool

	mu          sync.Mutex
	lastAttempt int64
	current     model.Content
}

// New builds a Cache that refreshes through fetcher.
func New(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:    fetcher,
		clock:      clock.Real(),
		interval:   int64(DefaultRefreshInterval / time.Second),
		logger:     slog.Default(),
		fallback:   model.DefaultContent(),
		stripPunct: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.current = c.normalize(c.fallback)
	return c
}

// Get is GetOrRefresh at the cache clock's current time.
func (c *Cache) Get(ctx context.Context) model.Content {
	return c.GetOrRefresh(ctx, clock.Unix(c.clock))
}

// GetOrRefresh returns the cached content, refreshing it first when no attempt
// was ever made or the last attempt is older than the interval. It never
// fails: on fetch errors the previous content (or the default) is returned.
func (c *Cache) GetOrRefresh(ctx context.Context, now int64) model.Content {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.staleLocked(now) {
		return c.current.Clone()
	}
	c.lastAttempt = now
	c.logger.Debug("refreshing content", "now", now)

	fetched, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("content refresh failed, serving cached content",
			"error", err,
			"title", c.current.Title,
			"next_attempt_after", now+c.interval,
		)
		return c.current.Clone()
	}
	c.current = c.normalize(fetched)
	c.logger.Info("content refreshed",
		"title", c.current.Title,
		"words", c.current.WordCount(),
		"fetched_at", c.current.FetchedAt,
	)
	return c.current.Clone()
}

// LastRefreshAttempt returns the epoch seconds of the last attempt, 0 if none.
func (c *Cache) LastRefreshAttempt() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAttempt
}

func (c *Cache) staleLocked(now int64) bool {
	if c.lastAttempt == 0 {
		return true
	}
	return now-c.lastAttempt > c.interval
}

func (c *Cache) fetch(ctx context.Context) (model.Content, error) {
	if c.fetcher == nil {
		return model.Content{}, ErrNoFetcher
	}
	fetched, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return model.Content{}, err
	}
	if len(Words(fetched.Body)) == 0 {
		return model.Content{}, ErrEmptyContent
	}
	return fetched, nil
}

func (c *Cache) normalize(in model.Content) model.Content {
	out := in.Clone()
	out.Body = Normalize(in.Body, c.stripPunct)
	return out
}
