package stats

import (
	"math"
	"testing"
)

func TestSessionMetrics(t *testing.T) {
	wpm, acc := SessionMetrics(30, 10, 60)
	if wpm != 30 {
		t.Fatalf("expected 30 wpm, got %v", wpm)
	}
	if acc != 0.75 {
		t.Fatalf("expected 0.75 accuracy, got %v", acc)
	}
}

func TestSessionMetricsGuardsZeroDenominators(t *testing.T) {
	cases := []struct {
		correct, wrong int
		elapsed        int64
	}{
		{0, 0, 0},
		{0, 0, 30},
		{5, 0, 0},
		{-1, -1, -5},
	}
	for _, c := range cases {
		wpm, acc := SessionMetrics(c.correct, c.wrong, c.elapsed)
		for _, v := range []float64{wpm, acc} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				t.Fatalf("expected finite non-negative metrics for %+v, got wpm=%v acc=%v", c, wpm, acc)
			}
		}
	}
	if _, acc := SessionMetrics(0, 0, 30); acc != 0 {
		t.Fatalf("expected accuracy 0 with no judged words, got %v", acc)
	}
	if wpm, _ := SessionMetrics(5, 0, 0); wpm != 0 {
		t.Fatalf("expected wpm 0 with no elapsed time, got %v", wpm)
	}
}

func TestRates(t *testing.T) {
	got := Rates([]int{0, 1, 1, 3})
	want := []float64{0, 1, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	flat := Sparkline([]float64{1, 1, 1})
	if len(flat) != 3 || flat[0] != flat[2] {
		t.Fatalf("expected flat sparkline, got %q", flat)
	}
	line := Sparkline([]float64{0, 10})
	if line[0] != ' ' || line[1] != '@' {
		t.Fatalf("expected min/max glyphs, got %q", line)
	}
}
