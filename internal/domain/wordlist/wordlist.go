// Package wordlist holds the immutable word sets that SMPC consults
// (function words and core vocabulary).
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Set is a read-only set of lowercase words. The zero value is an empty set.
type Set struct {
	words map[string]struct{}
}

// New builds a Set from words; entries are trimmed and lowercased, blanks are skipped.
func New(words []string) Set {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		m[w] = struct{}{}
	}
	return Set{words: m}
}

// Parse reads a newline-separated wordlist.
func Parse(r io.Reader) (Set, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Set{}, fmt.Errorf("read wordlist: %w", err)
	}
	return New(words), nil
}

// Contains reports whether word is in the set, ignoring case.
func (s Set) Contains(word string) bool {
	if s.words == nil {
		return false
	}
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct words.
func (s Set) Len() int { return len(s.words) }

// Loaded reports whether the set was built by New or Parse (as opposed to the zero value).
func (s Set) Loaded() bool { return s.words != nil }
