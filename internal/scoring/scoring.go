// Package scoring defines the contract shared by the pairwise similarity algorithms.
//
// Each algorithm lives in its own subpackage (cosine, fingerprint, smpc) and is
// stateless from the caller's point of view: Score depends only on the two texts
// and on read-only resources supplied at construction.
package scoring

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/essaysim/internal/domain"
	"github.com/kailas-cloud/essaysim/internal/domain/method"
)

// Scorer compares two texts and returns a similarity score.
// Implementations must be safe for concurrent use and symmetric in their arguments.
type Scorer interface {
	Method() method.Method
	Score(ctx context.Context, textA, textB string) (float64, error)
}

// Registry maps methods to their scorers.
type Registry map[method.Method]Scorer

// NewRegistry indexes scorers by their method. A later scorer replaces an earlier one.
func NewRegistry(scorers ...Scorer) Registry {
	r := make(Registry, len(scorers))
	for _, s := range scorers {
		r[s.Method()] = s
	}
	return r
}

// Lookup returns the scorer for m or ErrUnknownMethod.
func (r Registry) Lookup(m method.Method) (Scorer, error) {
	s, ok := r[m]
	if !ok || s == nil {
		return nil, fmt.Errorf("%s: %w", m, domain.ErrUnknownMethod)
	}
	return s, nil
}

// Require checks that every method has a scorer.
func (r Registry) Require(methods []method.Method) error {
	for _, m := range methods {
		if _, err := r.Lookup(m); err != nil {
			return err
		}
	}
	return nil
}
