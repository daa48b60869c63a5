package lexicon

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/essaysim/internal/db"
)

// DefaultSeedBatchSize is the number of fields written per HSET.
const DefaultSeedBatchSize = 500

// hashWriter is the consumer interface for seeding (ISP).
type hashWriter interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
}

// Seed writes entries into the lexicon hash under prefix. Fields are grouped into
// HSET commands of batchSize; up to 16 commands share one pipelined round-trip.
// It returns the number of fields written.
func Seed(ctx context.Context, s hashWriter, prefix string, entries map[string]string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultSeedBatchSize
	}
	const pipeline = 16

	key := Key(prefix)
	words := sortedWords(entries)

	var items []db.HashSetItem
	written := 0
	flush := func() error {
		if len(items) == 0 {
			return nil
		}
		if err := s.HSetMulti(ctx, items); err != nil {
			return fmt.Errorf("seed lexicon after %d words: %w", written, err)
		}
		for _, it := range items {
			written += len(it.Fields)
		}
		items = items[:0]
		return nil
	}

	for start := 0; start < len(words); start += batchSize {
		end := min(start+batchSize, len(words))
		fields := make(map[string]string, end-start)
		for _, w := range words[start:end] {
			fields[w] = entries[w]
		}
		items = append(items, db.HashSetItem{Key: key, Fields: fields})
		if len(items) == pipeline {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := flush(); err != nil {
		return written, err
	}
	return written, nil
}
