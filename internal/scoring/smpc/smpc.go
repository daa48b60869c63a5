// Package smpc implements the semantically-matching-paragraph-counter (SMPC) scorer.
//
// A text is cleaned, split into paragraphs, stripped of function words and
// canonicalized through a lexicon so that core-vocabulary words collapse onto a
// shared synonym. Two texts whose most frequent words barely overlap score 0;
// otherwise the score is the number of paragraph pairs whose most frequent words
// overlap. Scores are unbounded counts and are rescaled across a corpus later.
package smpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kailas-cloud/essaysim/internal/domain"
	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/domain/wordlist"
	"github.com/kailas-cloud/essaysim/internal/textnorm"
)

const (
	// TopN is the number of most frequent words compared per text and per paragraph.
	TopN = 10
	// GateOverlap is the minimum number of shared global top words for paragraph matching to run.
	GateOverlap = 3
	// ParagraphOverlap is the minimum number of shared top words for two paragraphs to match.
	ParagraphOverlap = 3
	// DefaultCacheSize is the number of text profiles memoized per scorer.
	DefaultCacheSize = 1024
)

// Resources are the read-only inputs SMPC needs. They are built once per run.
type Resources struct {
	FunctionWords wordlist.Set
	CoreVocab     wordlist.Set
	Lexicon       domain.Lexicon
}

// Validate returns ErrResourcesNotLoaded if any resource is missing.
func (r Resources) Validate() error {
	switch {
	case !r.FunctionWords.Loaded():
		return fmt.Errorf("function words: %w", domain.ErrResourcesNotLoaded)
	case !r.CoreVocab.Loaded():
		return fmt.Errorf("core vocabulary: %w", domain.ErrResourcesNotLoaded)
	case r.Lexicon == nil:
		return fmt.Errorf("lexicon: %w", domain.ErrResourcesNotLoaded)
	}
	return nil
}

// Scorer implements scoring.Scorer with SMPC.
type Scorer struct {
	res      Resources
	profiles *lru.Cache[uint64, *profile]
}

// New creates an SMPC scorer with a profile cache of DefaultCacheSize entries.
func New(res Resources) (*Scorer, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{res: res}
	return s.WithProfileCache(DefaultCacheSize), nil
}

// WithProfileCache resizes the profile cache. A non-positive size disables it.
func (s *Scorer) WithProfileCache(size int) *Scorer {
	if size <= 0 {
		s.profiles = nil
		return s
	}
	cache, err := lru.New[uint64, *profile](size)
	if err != nil {
		s.profiles = nil
		return s
	}
	s.profiles = cache
	return s
}

// Method returns method.SMPC.
func (s *Scorer) Method() method.Method { return method.SMPC }

// Score returns the number of matching paragraph pairs, or 0 when the texts fail the gate.
// A lexicon failure fails the comparison with ErrLexiconUnavailable.
func (s *Scorer) Score(ctx context.Context, textA, textB string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	pa, err := s.profile(ctx, textA)
	if err != nil {
		return 0, err
	}
	pb, err := s.profile(ctx, textB)
	if err != nil {
		return 0, err
	}
	return float64(match(pa, pb)), nil
}

func (s *Scorer) profile(ctx context.Context, text string) (*profile, error) {
	if s.profiles == nil {
		return s.build(ctx, text)
	}
	key := xxhash.Sum64String(text)
	if p, ok := s.profiles.Get(key); ok && p.source == text {
		return p, nil
	}
	p, err := s.build(ctx, text)
	if err != nil {
		return nil, err
	}
	s.profiles.Add(key, p)
	return p, nil
}

func (s *Scorer) build(ctx context.Context, text string) (*profile, error) {
	paragraphs := Segment(textnorm.Clean(text))
	paragraphs = RemoveFunctionWords(paragraphs, s.res.FunctionWords)
	paragraphs, err := Canonicalize(ctx, paragraphs, s.res.CoreVocab, s.res.Lexicon)
	if err != nil {
		return nil, err
	}
	return newProfile(text, paragraphs), nil
}

// match applies the global gate, then counts matching paragraph pairs.
func match(a, b *profile) int {
	if Overlap(a.top, b.top) < GateOverlap {
		return 0
	}
	topsA, topsB := a.paragraphTops(), b.paragraphTops()
	pairs := 0
	for _, ta := range topsA {
		for _, tb := range topsB {
			if Overlap(ta, tb) >= ParagraphOverlap {
				pairs++
			}
		}
	}
	return pairs
}

// Canonicalize replaces core-vocabulary tokens with the lexicon's synonym.
// Tokens without a synonym are kept. The input is not modified.
func Canonicalize(
	ctx context.Context, paragraphs [][]string, core wordlist.Set, lex domain.Lexicon,
) ([][]string, error) {
	out := make([][]string, len(paragraphs))
	for i, para := range paragraphs {
		replaced := make([]string, len(para))
		for j, word := range para {
			replaced[j] = word
			if !core.Contains(word) {
				continue
			}
			syn, ok, err := lex.SynonymOf(ctx, lower(word))
			if err != nil {
				if !errors.Is(err, domain.ErrLexiconUnavailable) {
					err = fmt.Errorf("%w: %w", domain.ErrLexiconUnavailable, err)
				}
				return nil, fmt.Errorf("synonym of %q: %w", word, err)
			}
			if ok {
				replaced[j] = syn
			}
		}
		out[i] = replaced
	}
	return out, nil
}

// RemoveFunctionWords drops tokens present in the function-word set.
func RemoveFunctionWords(paragraphs [][]string, functionWords wordlist.Set) [][]string {
	out := make([][]string, len(paragraphs))
	for i, para := range paragraphs {
		kept := make([]string, 0, len(para))
		for _, word := range para {
			if !functionWords.Contains(word) {
				kept = append(kept, word)
			}
		}
		out[i] = kept
	}
	return out
}
