package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrResourcesNotLoaded signals that wordlists or the lexicon were not supplied before scoring.
	ErrResourcesNotLoaded = errors.New("scoring resources not loaded")
	// ErrUnknownMethod signals a comparison method without a registered scorer.
	ErrUnknownMethod = errors.New("unknown comparison method")
	// ErrInvalidCorpus signals a corpus that cannot be compared (duplicate or empty ids).
	ErrInvalidCorpus = errors.New("invalid corpus")
	// ErrInvalidEssay signals an essay that failed validation.
	ErrInvalidEssay = errors.New("invalid essay")
	// ErrMalformedText signals text that is not valid UTF-8.
	ErrMalformedText = errors.New("malformed text")
	// ErrLexiconUnavailable signals a lexical lookup backend failure.
	ErrLexiconUnavailable = errors.New("lexicon unavailable")
	// ErrTaskPanicked signals a scorer that panicked while comparing a pair.
	ErrTaskPanicked = errors.New("comparison task panicked")
)

// TaskError wraps the failure of a single (method, pair) comparison.
type TaskError struct {
	Method string
	EssayA string
	EssayB string
	Err    error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s comparison of %s/%s: %v", e.Method, e.EssayA, e.EssayB, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// NewTaskError creates a task error for the given method and pair ids.
func NewTaskError(method, essayA, essayB string, err error) error {
	return &TaskError{Method: method, EssayA: essayA, EssayB: essayB, Err: err}
}
