package result

import (
	"sort"
	"time"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/domain/pair"
)

// Table collects comparison results per method, keyed by unordered pair.
// It is not safe for concurrent use; the orchestrator owns it from a single goroutine.
type Table struct {
	methods []method.Method
	rows    map[method.Method]map[pair.Key]Result
}

// NewTable creates an empty table for the given methods.
func NewTable(methods ...method.Method) *Table {
	t := &Table{rows: make(map[method.Method]map[pair.Key]Result, len(methods))}
	for _, m := range methods {
		t.ensure(m)
	}
	return t
}

func (t *Table) ensure(m method.Method) map[pair.Key]Result {
	rows, ok := t.rows[m]
	if !ok {
		rows = make(map[pair.Key]Result)
		t.rows[m] = rows
		t.methods = append(t.methods, m)
	}
	return rows
}

// Add stores a result. It returns false if the (method, pair) was already recorded.
func (t *Table) Add(r Result) bool {
	rows := t.ensure(r.Method())
	if _, dup := rows[r.Key()]; dup {
		return false
	}
	rows[r.Key()] = r
	return true
}

// Get returns the result for a method and pair.
func (t *Table) Get(m method.Method, key pair.Key) (Result, bool) {
	r, ok := t.rows[m][key]
	return r, ok
}

// Methods returns the methods in insertion order.
func (t *Table) Methods() []method.Method {
	out := make([]method.Method, len(t.methods))
	copy(out, t.methods)
	return out
}

// Len returns the number of results recorded for a method.
func (t *Table) Len(m method.Method) int { return len(t.rows[m]) }

// Results returns a method's results ordered by pair key.
func (t *Table) Results(m method.Method) []Result {
	rows := t.rows[m]
	out := make([]Result, 0, len(rows))
	for _, r := range rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key().Less(out[j].Key()) })
	return out
}

// Scores returns the scores of a method's successful results.
func (t *Table) Scores(m method.Method) map[pair.Key]float64 {
	rows := t.rows[m]
	out := make(map[pair.Key]float64, len(rows))
	for k, r := range rows {
		if r.Err() == nil {
			out[k] = r.Score()
		}
	}
	return out
}

// ReplaceScores overwrites the scores of existing successful results.
// Keys that are missing or failed are ignored.
func (t *Table) ReplaceScores(m method.Method, scores map[pair.Key]float64) {
	rows := t.rows[m]
	for k, s := range scores {
		r, ok := rows[k]
		if !ok || r.Err() != nil {
			continue
		}
		rows[k] = r.WithScore(s)
	}
}

// Failures returns every failed result across methods, ordered by method then pair.
func (t *Table) Failures() []Result {
	var out []Result
	for _, m := range t.methods {
		for _, r := range t.Results(m) {
			if r.Err() != nil {
				out = append(out, r)
			}
		}
	}
	return out
}

// Elapsed returns the summed scoring time of a method.
func (t *Table) Elapsed(m method.Method) time.Duration {
	var total time.Duration
	for _, r := range t.rows[m] {
		total += r.Elapsed()
	}
	return total
}
