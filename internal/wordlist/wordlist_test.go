package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadWordsSkipsBlankAndCommentLines(t *testing.T) {
	path := writeList(t, "# header\nalpha 120\n\n  beta  \ngamma\n")
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 3 || words[0] != "alpha" || words[1] != "beta" {
		t.Fatalf("unexpected words %v", words)
	}
}

func TestLoadWordsEmptyFile(t *testing.T) {
	path := writeList(t, "")
	if _, err := LoadWords(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadPracticableDropsPunctuatedWords(t *testing.T) {
	path := writeList(t, "e.g.\nokay\netc.\n")
	words, err := LoadPracticable(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 1 || words[0] != "okay" {
		t.Fatalf("unexpected words %v", words)
	}

	path = writeList(t, "a.b\nc;d\n")
	if _, err := LoadPracticable(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
