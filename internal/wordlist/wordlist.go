package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmpty is returned when a list yields no usable words.
var ErrEmpty = errors.New("word list is empty")

// LoadWords reads one word per line. Blank lines and lines starting with
// '#' are skipped; only the first field of a line is used, so frequency
// lists of the form "word count" load as-is.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		words = append(words, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// LoadPracticable loads path and keeps only Practicable words.
func LoadPracticable(path string) ([]string, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	words = Filter(words, Practicable)
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}
