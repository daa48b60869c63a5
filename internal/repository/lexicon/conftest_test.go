package lexicon

import (
	"context"
	"sync"

	"github.com/kailas-cloud/essaysim/internal/db"
)

// mockHashStore implements the consumer interfaces for tests.
type mockHashStore struct {
	mu       sync.Mutex
	hgetFn   func(ctx context.Context, key, field string) (string, error)
	hgets    []string
	hsetErr  error
	hsetRuns [][]db.HashSetItem
}

func (m *mockHashStore) HGet(ctx context.Context, key, field string) (string, error) {
	m.mu.Lock()
	m.hgets = append(m.hgets, key+"/"+field)
	m.mu.Unlock()
	if m.hgetFn != nil {
		return m.hgetFn(ctx, key, field)
	}
	return "", db.ErrKeyNotFound
}

func (m *mockHashStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	m.hsetRuns = append(m.hsetRuns, append([]db.HashSetItem(nil), items...))
	return nil
}

// countingLexicon counts lookups and answers from a map.
type countingLexicon struct {
	mu       sync.Mutex
	synonyms map[string]string
	err      error
	calls    int
}

func (c *countingLexicon) SynonymOf(_ context.Context, word string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return "", false, c.err
	}
	syn, ok := c.synonyms[word]
	return syn, ok, nil
}
