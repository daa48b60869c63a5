package lexicon

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/essaysim/internal/db"
	"github.com/kailas-cloud/essaysim/internal/domain"
)

// hashReader is the consumer interface for the Valkey-backed lexicon (ISP).
type hashReader interface {
	HGet(ctx context.Context, key, field string) (string, error)
}

// Key returns the hash that holds the lexicon under prefix.
func Key(prefix string) string { return prefix + "lexicon" }

// Store is a lexicon shared through a Valkey hash: field = word, value = synonym.
type Store struct {
	store hashReader
	key   string
}

// NewStore creates a Valkey-backed lexicon.
func NewStore(s hashReader, prefix string) *Store {
	return &Store{store: s, key: Key(prefix)}
}

// SynonymOf looks up word with HGET. A missing field is a miss; any other
// failure is reported as ErrLexiconUnavailable.
func (s *Store) SynonymOf(ctx context.Context, word string) (string, bool, error) {
	syn, err := s.store.HGet(ctx, s.key, strings.ToLower(word))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %w", domain.ErrLexiconUnavailable, err)
	}
	return syn, true, nil
}
