package tui

import (
	"testing"

	"github.com/verte-zerg/typeboard/internal/session"
)

func TestBuildStyledWordsCurrentWordCursor(t *testing.T) {
	words := []session.Word{
		{Text: "ab", Class: session.WordCorrect},
		{Text: "cd", Class: session.WordCurrent},
	}
	runes := buildStyledWords(words, "")
	if len(runes) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for committed word")
	}
	if !runes[2].isSpace {
		t.Fatalf("expected separator between words")
	}
	if runes[3].s != cursorStyle.Render("c") {
		t.Fatalf("expected cursor on first rune of current word")
	}
	if runes[4].s != currentWordStyle.Render("d") {
		t.Fatalf("expected current word style after cursor")
	}
}

func TestBuildStyledWordsMarksTyposBeforeCommit(t *testing.T) {
	words := []session.Word{{Text: "abc", Class: session.WordCurrent}}
	runes := buildStyledWords(words, "ax")
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for matching rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for mismatched rune")
	}
	if runes[2].s != cursorStyle.Render("c") {
		t.Fatalf("expected cursor after typed prefix")
	}
}

func TestBuildStyledWordsWrongAndPending(t *testing.T) {
	words := []session.Word{
		{Text: "x", Class: session.WordWrong},
		{Text: "y", Class: session.WordPending},
	}
	runes := buildStyledWords(words, "")
	if runes[0].s != incorrectStyle.Render("x") {
		t.Fatalf("expected incorrect style for wrong word")
	}
	if runes[2].s != pendingStyle.Render("y") {
		t.Fatalf("expected pending style for later word")
	}
}

func plainRunes(text string) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	return out
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	got := wrapStyledRunes(plainRunes("one two three four"), 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapStyledRunesHardBreaksLongWords(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abcdefgh"), 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap %q", got)
	}
	if wrapStyledRunes(plainRunes("a b"), 0) != "a b" {
		t.Fatalf("expected no wrapping for zero width")
	}
}

func TestBuildPlainWords(t *testing.T) {
	runes := buildPlainWords([]string{"hi", "yo"}, nextStyle)
	if len(runes) != 5 || !runes[2].isSpace {
		t.Fatalf("unexpected plain runes %+v", runes)
	}
}
