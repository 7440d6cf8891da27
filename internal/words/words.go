// internal/words/words.go
//
// Candidate word list for board generation.
//
// Responsibilities:
//   - Load the list once at startup from WORDS_FILE, or fall back to the
//     embedded assets/words.json.
//   - Normalize entries (trim, drop empties) and remove duplicates.
//   - Expose the unique list and simple counts for diagnostics.
//
// Format:
//   A JSON array of strings, e.g. ["apple", "anchor", ...].
//
// Deduplication keeps the FIRST occurrence of every word and preserves the
// input order otherwise. The word shuffle is seeded and reproducible, so the
// order fed into it has to be stable as well.

package words

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/codenames/assets"
)

// ErrEmpty is returned when a word list contains no usable entries.
var ErrEmpty = errors.New("words: list is empty")

var (
	initOnce   sync.Once
	rawCount   int
	unique     []string
	initialErr error
)

// Init loads the word list exactly once.
// An empty path selects the embedded default list.
func Init(path string) error {
	initOnce.Do(func() {
		list, err := Load(path)
		if err != nil {
			initialErr = err
			return
		}
		rawCount = len(list)
		unique = Dedup(list)
	})
	return initialErr
}

// Load reads and parses a word list without touching package state.
func Load(path string) ([]string, error) {
	var (
		b   []byte
		err error
	)
	if path == "" {
		b, err = assets.DefaultWords()
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return Parse(b)
}

// Parse decodes a JSON array of strings, trimming entries and dropping
// empty ones. Case is preserved.
func Parse(b []byte) ([]string, error) {
	var in []string
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}
	out := make([]string, 0, len(in))
	for _, w := range in {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Dedup removes duplicates, keeping first-occurrence order.
func Dedup(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// List returns a copy of the loaded, deduplicated word list.
func List() []string {
	return append([]string(nil), unique...)
}

// Stats returns counts of loaded words: (raw entries, unique words).
func Stats() (rawTotal int, uniqueTotal int) {
	return rawCount, len(unique)
}
