// Package normalize rescales raw scores of one method onto [0,1].
package normalize

import (
	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/domain/pair"
	"github.com/kailas-cloud/essaysim/internal/domain/result"
)

// MinMax maps every score s to (s-min)/(max-min). When all scores are equal
// every entry becomes 1.0. The input is not modified.
func MinMax(scores map[pair.Key]float64) map[pair.Key]float64 {
	out := make(map[pair.Key]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	first := true
	var lo, hi float64
	for _, s := range scores {
		if first {
			lo, hi, first = s, s, false
			continue
		}
		lo = min(lo, s)
		hi = max(hi, s)
	}

	span := hi - lo
	for k, s := range scores {
		if span == 0 {
			out[k] = 1
			continue
		}
		out[k] = (s - lo) / span
	}
	return out
}

// Table rescales the successful results of method m in place.
// Failed results keep their error and are excluded from min and max.
func Table(t *result.Table, m method.Method) {
	t.ReplaceScores(m, MinMax(t.Scores(m)))
}
