package result

import (
	"time"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/domain/pair"
)

// Status is the processing outcome of a single comparison.
type Status string

// Comparison status values.
const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Result is the outcome of comparing one pair of essays with one method.
type Result struct {
	method  method.Method
	key     pair.Key
	score   float64
	elapsed time.Duration
	err     error
}

// NewOK creates a successful comparison result.
func NewOK(m method.Method, key pair.Key, score float64, elapsed time.Duration) Result {
	return Result{method: m, key: key, score: score, elapsed: elapsed}
}

// NewError creates a failed comparison result.
func NewError(m method.Method, key pair.Key, elapsed time.Duration, err error) Result {
	return Result{method: m, key: key, elapsed: elapsed, err: err}
}

// Method returns the comparison method.
func (r Result) Method() method.Method { return r.method }

// Key returns the unordered pair key.
func (r Result) Key() pair.Key { return r.key }

// Score returns the similarity score (zero for failed results).
func (r Result) Score() float64 { return r.score }

// Elapsed returns the time spent scoring the pair.
func (r Result) Elapsed() time.Duration { return r.elapsed }

// Err returns the failure cause, if any.
func (r Result) Err() error { return r.err }

// Status returns the processing outcome.
func (r Result) Status() Status {
	if r.err != nil {
		return StatusError
	}
	return StatusOK
}

// WithScore returns a copy with the score replaced.
func (r Result) WithScore(score float64) Result {
	r.score = score
	return r
}
