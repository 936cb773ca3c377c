package model

import (
	_ "embed" // Default practice text.
	"strings"
)

//go:embed default.txt
var defaultBody string

// DefaultTitle is the title used when a Content has none.
const DefaultTitle = ""

// Content is one reference text served to typing sessions. It is treated as
// immutable once constructed.
type Content struct {
	Title     string   `json:"title,omitempty"`
	Body      string   `json:"body"`
	Sources   []string `json:"sources"`
	FetchedAt int64    `json:"fetched_at"`
}

// DefaultContent returns the built-in text served before any successful fetch.
func DefaultContent() Content {
	return Content{
		Title:     "Go Proverbs, Retold",
		Body:      strings.TrimSpace(defaultBody),
		Sources:   []string{"https://go-proverbs.github.io/"},
		FetchedAt: 0,
	}
}

// TitleOr returns the title, or fallback when the title is absent.
func (c Content) TitleOr(fallback string) string {
	if strings.TrimSpace(c.Title) == "" {
		return fallback
	}
	return c.Title
}

// WordCount reports the number of whitespace-separated words in the body.
func (c Content) WordCount() int {
	return len(strings.Fields(c.Body))
}

// Clone returns a copy that shares no slices with c.
func (c Content) Clone() Content {
	out := c
	if c.Sources != nil {
		out.Sources = append([]string(nil), c.Sources...)
	}
	return out
}
