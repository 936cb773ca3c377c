package refresh

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// DefaultFeedItems is how many feed items feed a single story.
const DefaultFeedItems = 5

// FeedHarvester reads the top items of an RSS or Atom feed.
type FeedHarvester struct {
	url    string
	items  int
	parser *gofeed.Parser
}

// NewFeedHarvester returns a harvester for url using at most items entries.
func NewFeedHarvester(url string, items int) *FeedHarvester {
	if items <= 0 {
		items = DefaultFeedItems
	}
	return &FeedHarvester{url: url, items: items, parser: gofeed.NewParser()}
}

func (h *FeedHarvester) Harvest(ctx context.Context) (Harvest, error) {
	feed, err := h.parser.ParseURLWithContext(h.url, ctx)
	if err != nil {
		return Harvest{}, fmt.Errorf("fetching %s: %w", h.url, err)
	}

	items := feed.Items
	if len(items) > h.items {
		items = items[:h.items]
	}

	out := Harvest{Title: strings.TrimSpace(feed.Title)}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		desc := item.Description
		if desc == "" {
			desc = item.Content
		}
		text := joinNonEmpty(strings.TrimSpace(item.Title), stripHTML(desc))
		if text == "" {
			continue
		}
		parts = append(parts, text)
		if item.Link != "" {
			out.Sources = append(out.Sources, item.Link)
		}
		if out.Title == "" {
			out.Title = strings.TrimSpace(item.Title)
		}
	}
	if len(parts) == 0 {
		return Harvest{}, fmt.Errorf("feed %s: %w", h.url, ErrNothingHarvested)
	}
	out.Text = strings.Join(parts, "\n")
	return out, nil
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
