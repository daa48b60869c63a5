package lexicon

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/essaysim/internal/domain"
)

type entry struct {
	synonym string
	found   bool
}

// Cached memoizes lookups of an inner lexicon in an LRU. Hits and misses are
// cached; errors are not.
type Cached struct {
	inner      domain.Lexicon
	cache      *lru.Cache[string, entry]
	cacheTotal *prometheus.CounterVec
}

// NewCached creates a caching decorator holding up to size words.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func NewCached(inner domain.Lexicon, size int, cacheTotal *prometheus.CounterVec) (*Cached, error) {
	cache, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("create lexicon cache: %w", err)
	}
	return &Cached{inner: inner, cache: cache, cacheTotal: cacheTotal}, nil
}

// SynonymOf returns a cached answer or asks the inner lexicon.
func (c *Cached) SynonymOf(ctx context.Context, word string) (string, bool, error) {
	word = strings.ToLower(word)
	if e, ok := c.cache.Get(word); ok {
		c.incCache("hit")
		return e.synonym, e.found, nil
	}
	c.incCache("miss")

	syn, found, err := c.inner.SynonymOf(ctx, word)
	if err != nil {
		return "", false, err
	}
	c.cache.Add(word, entry{synonym: syn, found: found})
	return syn, found, nil
}

// Len returns the number of cached words.
func (c *Cached) Len() int { return c.cache.Len() }

func (c *Cached) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
