// Package generator builds practice texts from a word list.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Generator produces randomized practice text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects count words uniformly and capitalizes sentence starts.
// A sentence ends after sentenceLen words; sentenceLen <= 0 disables it.
func (g *Generator) Generate(words []string, count, sentenceLen int, capsPct float64) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		if sentenceLen > 0 && i%sentenceLen == 0 {
			word = capitalize(word)
		} else {
			word = applyCaps(g.rnd, word, capsPct)
		}
		result = append(result, word)
	}
	return result
}

// Text joins Generate output into a single body.
func (g *Generator) Text(words []string, count, sentenceLen int, capsPct float64) string {
	return strings.Join(g.Generate(words, count, sentenceLen, capsPct), " ")
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	return capitalize(word)
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
