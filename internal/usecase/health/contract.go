package health

import (
	"context"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
)

// LexiconPinger checks the shared lexicon backend.
type LexiconPinger interface {
	Ping(ctx context.Context) error
}

// ScorerChecker verifies that every configured method has a scorer.
type ScorerChecker interface {
	Require(methods []method.Method) error
}
