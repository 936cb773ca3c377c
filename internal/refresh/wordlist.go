package refresh

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/verte-zerg/typeboard/internal/generator"
	"github.com/verte-zerg/typeboard/internal/wordlist"
)

const (
	// DefaultWordCount is the size of a generated word-list text.
	DefaultWordCount = 200

	sentenceLen = 12
	capsPct     = 0.05
)

// WordlistHarvester builds random text from a local word list. It needs no
// network access.
type WordlistHarvester struct {
	path  string
	words int
	gen   *generator.Generator
}

// NewWordlistHarvester returns a harvester reading path. A nil gen uses a
// time-seeded generator.
func NewWordlistHarvester(path string, words int, gen *generator.Generator) *WordlistHarvester {
	if words <= 0 {
		words = DefaultWordCount
	}
	if gen == nil {
		gen = generator.New()
	}
	return &WordlistHarvester{path: path, words: words, gen: gen}
}

func (h *WordlistHarvester) Harvest(ctx context.Context) (Harvest, error) {
	if err := ctx.Err(); err != nil {
		return Harvest{}, err
	}
	words, err := wordlist.LoadPracticable(h.path)
	if err != nil {
		return Harvest{}, fmt.Errorf("wordlist %s: %w", h.path, err)
	}
	return Harvest{
		Title: "Random words from " + filepath.Base(h.path),
		Text:  h.gen.Text(words, h.words, sentenceLen, capsPct),
	}, nil
}
