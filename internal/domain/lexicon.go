package domain

import "context"

// Lexicon maps a word to its canonical (most common) synonym.
// A miss is not an error: implementations return ("", false, nil).
type Lexicon interface {
	SynonymOf(ctx context.Context, word string) (string, bool, error)
}

// Pinger checks availability of a lexicon backend.
type Pinger interface {
	Ping(ctx context.Context) error
}
