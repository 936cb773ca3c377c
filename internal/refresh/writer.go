package refresh

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyStory is returned when a writer produces no words.
var ErrEmptyStory = errors.New("story is empty")

// Story is the practice text written from a harvest.
type Story struct {
	Title string
	Body  string
}

// Writer turns harvested text into a story.
type Writer interface {
	Write(ctx context.Context, h Harvest) (Story, error)
}

// PassthroughWriter uses the harvested text as the story body.
type PassthroughWriter struct{}

func (PassthroughWriter) Write(_ context.Context, h Harvest) (Story, error) {
	body := strings.Join(strings.Fields(h.Text), " ")
	if body == "" {
		return Story{}, ErrEmptyStory
	}
	return Story{Title: h.Title, Body: body}, nil
}

// parseStory reads a "TITLE: ..." line followed by the body. Without a
// title line the whole response is the body.
func parseStory(response string) Story {
	response = strings.TrimSpace(response)
	first, rest, found := strings.Cut(response, "\n")
	label, title, ok := strings.Cut(first, ":")
	if !ok || !strings.EqualFold(strings.TrimSpace(label), "title") {
		return Story{Body: response}
	}
	if !found {
		rest = ""
	}
	rest = strings.TrimSpace(rest)
	if label, body, ok := strings.Cut(rest, ":"); ok && strings.EqualFold(strings.TrimSpace(label), "story") {
		rest = strings.TrimSpace(body)
	}
	return Story{
		Title: strings.Trim(strings.TrimSpace(title), `"`),
		Body:  rest,
	}
}
