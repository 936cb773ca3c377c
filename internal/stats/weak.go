package stats

import "sort"

// TopMissed returns up to n distinct reference words that were mistyped,
// most frequent first and alphabetical among ties.
func TopMissed(missed []string, n int) []string {
	if n <= 0 || len(missed) == 0 {
		return nil
	}
	counts := make(map[string]int, len(missed))
	for _, w := range missed {
		counts[w]++
	}
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] == counts[words[j]] {
			return words[i] < words[j]
		}
		return counts[words[i]] > counts[words[j]]
	})
	if n > len(words) {
		n = len(words)
	}
	return words[:n]
}
