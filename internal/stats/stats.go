// Package stats contains metric calculations and text rendering helpers.
package stats

import (
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes words per minute and accuracy for a session.
// Degenerate inputs yield 0 instead of NaN or Inf: accuracy is 0 when no word
// was judged and wpm is 0 when no time elapsed.
func SessionMetrics(correct, wrong int, elapsedSeconds int64) (wpm, accuracy float64) {
	if correct < 0 {
		correct = 0
	}
	if wrong < 0 {
		wrong = 0
	}
	if den := correct + wrong; den > 0 {
		accuracy = float64(correct) / float64(den)
	}
	if elapsedSeconds > 0 {
		minutes := float64(elapsedSeconds) / 60.0
		wpm = float64(correct) / minutes
	}
	return wpm, accuracy
}

// Rates converts a series of cumulative counts into per-step increments.
func Rates(cumulative []int) []float64 {
	out := make([]float64, len(cumulative))
	prev := 0
	for i, v := range cumulative {
		out[i] = float64(v - prev)
		prev = v
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
