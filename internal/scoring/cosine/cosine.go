// Package cosine scores two texts by the cosine of their word-frequency vectors.
package cosine

import (
	"context"
	"math"
	"sort"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/textnorm"
)

// Config controls text preparation.
type Config struct {
	// Clean runs textnorm.Clean before tokenizing. When false, raw whitespace tokens are compared.
	Clean bool
}

// Scorer implements scoring.Scorer with cosine similarity.
type Scorer struct {
	clean bool
}

// New creates a cosine scorer.
func New(cfg Config) *Scorer {
	return &Scorer{clean: cfg.Clean}
}

// Method returns method.Cosine.
func (s *Scorer) Method() method.Method { return method.Cosine }

// Score returns the cosine similarity of the two texts in [0,1].
func (s *Scorer) Score(_ context.Context, textA, textB string) (float64, error) {
	a := textnorm.Words(textnorm.Prepare(textA, s.clean))
	b := textnorm.Words(textnorm.Prepare(textB, s.clean))
	return Similarity(a, b), nil
}

// Vocabulary returns the sorted union of both token sequences.
func Vocabulary(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, w := range a {
		seen[w] = struct{}{}
	}
	for _, w := range b {
		seen[w] = struct{}{}
	}
	vocab := make([]string, 0, len(seen))
	for w := range seen {
		vocab = append(vocab, w)
	}
	sort.Strings(vocab)
	return vocab
}

// Vectors counts each vocabulary word in a and b; both vectors share vocab's index space.
func Vectors(vocab, a, b []string) (va, vb []int) {
	index := make(map[string]int, len(vocab))
	for i, w := range vocab {
		index[w] = i
	}
	va = make([]int, len(vocab))
	vb = make([]int, len(vocab))
	for _, w := range a {
		if i, ok := index[w]; ok {
			va[i]++
		}
	}
	for _, w := range b {
		if i, ok := index[w]; ok {
			vb[i]++
		}
	}
	return va, vb
}

// Similarity returns dot(va, vb) / (|va| * |vb|) over the shared vocabulary.
// If either text has no tokens the result is 0.
func Similarity(a, b []string) float64 {
	va, vb := Vectors(Vocabulary(a, b), a, b)

	var dot, normA, normB int
	for i := range va {
		dot += va[i] * vb[i]
		normA += va[i] * va[i]
		normB += vb[i] * vb[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float64(dot) / (math.Sqrt(float64(normA)) * math.Sqrt(float64(normB)))
}
