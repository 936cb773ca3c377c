package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typeboard/internal/session"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledWords styles the current chunk. Inside the current word each
// typed rune is checked against the reference so typos show before commit.
func buildStyledWords(words []session.Word, input string) []styledRune {
	inputRunes := []rune(input)
	out := make([]styledRune, 0, len(words)*6)
	for i, w := range words {
		if i > 0 {
			out = append(out, spaceRune())
		}
		base := classStyle(w.Class)
		for j, r := range []rune(w.Text) {
			style := base
			if w.Class == session.WordCurrent {
				switch {
				case j < len(inputRunes) && inputRunes[j] == r:
					style = correctStyle
				case j < len(inputRunes):
					style = incorrectStyle
				case j == len(inputRunes):
					style = cursorStyle
				}
			}
			out = append(out, newStyledRune(style, r))
		}
	}
	return out
}

func buildPlainWords(words []string, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(words)*6)
	for i, w := range words {
		if i > 0 {
			out = append(out, spaceRune())
		}
		for _, r := range w {
			out = append(out, newStyledRune(style, r))
		}
	}
	return out
}

func classStyle(class session.WordClass) lipgloss.Style {
	switch class {
	case session.WordCorrect:
		return correctStyle
	case session.WordWrong:
		return incorrectStyle
	case session.WordCurrent:
		return currentWordStyle
	default:
		return pendingStyle
	}
}

func newStyledRune(style lipgloss.Style, r rune) styledRune {
	return styledRune{s: style.Render(string(r)), width: runewidth.RuneWidth(r)}
}

func spaceRune() styledRune {
	return styledRune{s: " ", width: 1, isSpace: true}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
