package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/typeboard/internal/model"
)

var (
	// ErrEmptyContent is returned when a fetch yields no words.
	ErrEmptyContent = errors.New("fetched content is empty")
	// ErrNoFetcher is returned when a Cache was built without a Fetcher.
	ErrNoFetcher = errors.New("no content fetcher configured")
)

// Fetcher retrieves the newest reference text from an upstream source.
// Any error is treated the same way by the Cache.
type Fetcher interface {
	Fetch(ctx context.Context) (model.Content, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (model.Content, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) (model.Content, error) {
	return f(ctx)
}

// LatestReader is the read side of a content store.
type LatestReader interface {
	LatestContent(ctx context.Context) (model.Content, error)
}

// StoreFetcher fetches the most recent content written by the refresh pipeline.
type StoreFetcher struct {
	Store LatestReader
}

// Fetch returns the newest stored content.
func (f StoreFetcher) Fetch(ctx context.Context) (model.Content, error) {
	if f.Store == nil {
		return model.Content{}, ErrNoFetcher
	}
	c, err := f.Store.LatestContent(ctx)
	if err != nil {
		return model.Content{}, fmt.Errorf("content store fetch: %w", err)
	}
	return c, nil
}
