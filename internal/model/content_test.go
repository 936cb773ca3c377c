package model

import "testing"

func TestDefaultContentHasBody(t *testing.T) {
	c := DefaultContent()
	if c.WordCount() < 15 {
		t.Fatalf("expected default body with at least one full chunk, got %d words", c.WordCount())
	}
	if len(c.Sources) == 0 {
		t.Fatalf("expected default sources")
	}
	if c.FetchedAt != 0 {
		t.Fatalf("expected default content to carry no fetch time")
	}
}

func TestTitleOr(t *testing.T) {
	if got := (Content{}).TitleOr("fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := (Content{Title: "Story"}).TitleOr("fallback"); got != "Story" {
		t.Fatalf("expected Story, got %q", got)
	}
}

func TestCloneDetachesSources(t *testing.T) {
	c := Content{Sources: []string{"a"}}
	cp := c.Clone()
	cp.Sources[0] = "b"
	if c.Sources[0] != "a" {
		t.Fatalf("expected original sources untouched")
	}
}
