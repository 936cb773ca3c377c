package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/typeboard/internal/model"
)

const topHosts = 3

// ContentLister lists stored contents newest first.
type ContentLister interface {
	ListContents(ctx context.Context, limit int) ([]model.Content, error)
}

// TextsReport summarizes the stored reference texts.
type TextsReport struct {
	Contents   []model.Content
	TotalWords int
	TopHosts   []string
}

// BuildTextsReport loads up to last contents (all when last <= 0) and
// prepares them for rendering.
func BuildTextsReport(ctx context.Context, st ContentLister, last int) (TextsReport, error) {
	contents, err := st.ListContents(ctx, last)
	if err != nil {
		return TextsReport{}, fmt.Errorf("failed to list contents: %w", err)
	}
	report := TextsReport{Contents: contents}
	for _, c := range contents {
		report.TotalWords += c.WordCount()
	}
	report.TopHosts = TopSourceHosts(contents, topHosts)
	return report, nil
}

// RenderTexts writes the report as an aligned table. A positive width bounds
// the title and sources columns; loc controls timestamp rendering.
func RenderTexts(w io.Writer, report TextsReport, width int, loc *time.Location) error {
	if len(report.Contents) == 0 {
		_, err := fmt.Fprintln(w, "No texts stored yet. Run `typeboard refresh` or `typeboard import`.")
		return err
	}
	if loc == nil {
		loc = time.Local
	}
	headers := []string{"Fetched", "Words", "Title", "Sources"}
	rows := make([][]string, 0, len(report.Contents))
	for _, c := range report.Contents {
		rows = append(rows, []string{
			time.Unix(c.FetchedAt, 0).In(loc).Format("2006-01-02 15:04"),
			strconv.Itoa(c.WordCount()),
			c.TitleOr("(untitled)"),
			strings.Join(c.Sources, " "),
		})
	}
	if width > 0 {
		// Fetched and Words are fixed; split the rest between title and sources.
		fixed := len("2006-01-02 15:04") + 2 + len("Words") + 2 + 2
		free := width - fixed
		if free < 20 {
			free = 20
		}
		for _, row := range rows {
			row[2] = truncateCell(row[2], free/2)
			row[3] = truncateCell(row[3], free-free/2)
		}
	}

	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	summary := fmt.Sprintf("%d texts, %d words", len(report.Contents), report.TotalWords)
	if len(report.TopHosts) > 0 {
		summary += "; top sources: " + strings.Join(report.TopHosts, ", ")
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
