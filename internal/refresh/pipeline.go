package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/verte-zerg/typeboard/internal/clock"
	"github.com/verte-zerg/typeboard/internal/model"
)

// Saver persists a freshly written content record.
type Saver interface {
	InsertContent(ctx context.Context, c model.Content) error
}

// Pipeline runs harvest, write and store in sequence.
type Pipeline struct {
	harvester Harvester
	writer    Writer
	saver     Saver
	clock     clock.Clock
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for FetchedAt.
func WithClock(c clock.Clock) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline wires the three stages together.
func NewPipeline(h Harvester, w Writer, s Saver, opts ...Option) *Pipeline {
	p := &Pipeline{
		harvester: h,
		writer:    w,
		saver:     s,
		clock:     clock.Real(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.writer == nil {
		p.writer = PassthroughWriter{}
	}
	return p
}

// Run performs one refresh and returns the stored content.
func (p *Pipeline) Run(ctx context.Context) (model.Content, error) {
	if p.harvester == nil || p.saver == nil {
		return model.Content{}, fmt.Errorf("refresh run: pipeline is not configured")
	}
	h, err := p.harvester.Harvest(ctx)
	if err != nil {
		return model.Content{}, fmt.Errorf("refresh harvest: %w", err)
	}
	p.logger.Debug("harvested text", "title", h.Title, "sources", len(h.Sources))

	story, err := p.writer.Write(ctx, h)
	if err != nil {
		return model.Content{}, fmt.Errorf("refresh write: %w", err)
	}
	if len(strings.Fields(story.Body)) == 0 {
		return model.Content{}, fmt.Errorf("refresh write: %w", ErrEmptyStory)
	}

	c := model.Content{
		Title:     strings.TrimSpace(story.Title),
		Body:      story.Body,
		Sources:   append([]string(nil), h.Sources...),
		FetchedAt: clock.Unix(p.clock),
	}
	if err := p.saver.InsertContent(ctx, c); err != nil {
		return model.Content{}, fmt.Errorf("refresh store: %w", err)
	}
	p.logger.Info("stored new content", "title", c.Title, "words", c.WordCount(), "sources", len(c.Sources))
	return c, nil
}

// RunEvery runs immediately and then once per interval until ctx is done.
// Failed runs are logged and retried on the next tick.
func (p *Pipeline) RunEvery(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("refresh interval must be > 0")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	p.loop(ctx, ticker.C)
	return nil
}

func (p *Pipeline) loop(ctx context.Context, ticks <-chan time.Time) {
	for {
		if _, err := p.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("refresh failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
		}
	}
}
