// Package lexicon provides the synonym backends SMPC canonicalizes core vocabulary with.
package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kailas-cloud/essaysim/internal/domain"
)

// Compile-time checks.
var (
	_ domain.Lexicon = (*Static)(nil)
	_ domain.Lexicon = (*Store)(nil)
	_ domain.Lexicon = (*Cached)(nil)
)

// Static is an in-memory lexicon. It is read-only after construction.
type Static struct {
	synonyms map[string]string
}

// NewStatic builds a lexicon from word -> synonym pairs. Words are lowercased.
func NewStatic(synonyms map[string]string) *Static {
	m := make(map[string]string, len(synonyms))
	for w, syn := range synonyms {
		m[strings.ToLower(w)] = syn
	}
	return &Static{synonyms: m}
}

// LoadStatic reads a TSV lexicon file.
func LoadStatic(path string) (*Static, error) {
	entries, err := ReadTSV(path)
	if err != nil {
		return nil, err
	}
	return NewStatic(entries), nil
}

// SynonymOf returns the synonym of word. A missing word is not an error.
func (s *Static) SynonymOf(_ context.Context, word string) (string, bool, error) {
	syn, ok := s.synonyms[strings.ToLower(word)]
	return syn, ok, nil
}

// Len returns the number of entries.
func (s *Static) Len() int { return len(s.synonyms) }

// ReadTSV reads a lexicon file.
func ReadTSV(path string) (map[string]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open lexicon %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	entries, err := ParseTSV(f)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return entries, nil
}

// ParseTSV parses "word<TAB>synonym" lines. Blank lines and lines starting
// with '#' are skipped. Words are lowercased; synonyms are kept as written.
func ParseTSV(r io.Reader) (map[string]string, error) {
	entries := make(map[string]string)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		word, syn, ok := strings.Cut(text, "\t")
		word, syn = strings.ToLower(strings.TrimSpace(word)), strings.TrimSpace(syn)
		if !ok || word == "" || syn == "" {
			return nil, fmt.Errorf("line %d: expected word<TAB>synonym", line)
		}
		entries[word] = syn
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return entries, nil
}

// sortedWords returns the keys of entries in lexical order.
func sortedWords(entries map[string]string) []string {
	words := make([]string, 0, len(entries))
	for w := range entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
