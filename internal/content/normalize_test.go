package content

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		strip bool
		want  string
	}{
		{"a\nb", false, "a b"},
		{"a\r\nb", true, "a b"},
		{"one, two. three: four; five!", true, "one two three four five!"},
		{"one, two.", false, "one, two."},
		{"", true, ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input, tt.strip); got != tt.want {
			t.Errorf("Normalize(%q, %v) = %q, want %q", tt.input, tt.strip, got, tt.want)
		}
	}
}

func TestNormalizeKeepsWordBoundaries(t *testing.T) {
	body := "end of line\nstart of next"
	if got := len(Words(Normalize(body, true))); got != 6 {
		t.Fatalf("expected 6 words, got %d", got)
	}
}
