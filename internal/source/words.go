package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Words replays a fixed word list, wrapping around at the end.
type Words struct {
	words []string
	index int
}

// NewWords returns a cyclic source over words. The slice is not copied.
func NewWords(words []string) (*Words, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty word list", ErrResourceUnavailable)
	}
	return &Words{words: words}, nil
}

// NewWordsFromFile loads one word per line from path. An empty path selects
// DefaultWordList.
func NewWordsFromFile(path string) (*Words, error) {
	if path == "" {
		path = DefaultWordList
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	defer f.Close()

	words, err := LoadWords(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrResourceUnavailable, path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s contains no words", ErrResourceUnavailable, path)
	}
	return NewWords(words)
}

// LoadWords reads one word per line, trimming surrounding whitespace and
// skipping blank lines.
func LoadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func (w *Words) ID() string   { return "words" }
func (w *Words) Name() string { return "Common English Words" }

func (w *Words) Next() (string, error) {
	word := w.words[w.index]
	w.index++
	if w.index >= len(w.words) {
		w.index = 0
	}
	return word, nil
}

// Reset moves the cursor back to the first word.
func (w *Words) Reset() { w.index = 0 }

// Len reports the number of words in the list.
func (w *Words) Len() int { return len(w.words) }
