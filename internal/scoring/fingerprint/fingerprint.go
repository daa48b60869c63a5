// Package fingerprint scores two texts by the Dice coefficient of their sampled n-gram fingerprints.
//
// Each text is stripped of space characters and cut into overlapping NGramSize-rune
// windows. Every window is hashed with MD5 and read as a 128-bit big-endian integer;
// only digests divisible by Modulus are kept as fingerprints.
package fingerprint

import (
	"context"
	"crypto/md5"
	"strings"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/textnorm"
)

const (
	// NGramSize is the window length in runes.
	NGramSize = 4
	// Modulus selects fingerprints: a digest is kept when digest mod Modulus == 0.
	Modulus = 3
)

// Digest is a 128-bit MD5 digest, most significant byte first.
type Digest [md5.Size]byte

// Mod returns the digest, read as a big-endian unsigned integer, modulo m.
func (d Digest) Mod(m uint32) uint32 {
	var r uint64
	for _, b := range d {
		r = (r<<8 | uint64(b)) % uint64(m)
	}
	return uint32(r)
}

// Set is a set of fingerprint digests.
type Set map[Digest]struct{}

// Config controls text preparation.
type Config struct {
	// Clean runs textnorm.Clean before fingerprinting. When false, the raw text is used.
	Clean bool
}

// Scorer implements scoring.Scorer with the fingerprint method.
type Scorer struct {
	clean bool
}

// New creates a fingerprint scorer.
func New(cfg Config) *Scorer {
	return &Scorer{clean: cfg.Clean}
}

// Method returns method.Fingerprint.
func (s *Scorer) Method() method.Method { return method.Fingerprint }

// Score returns the Dice coefficient of the two fingerprint sets in [0,1].
// When neither text keeps a fingerprint, identical texts with at least one
// n-gram score 1 and everything else scores 0.
func (s *Scorer) Score(_ context.Context, textA, textB string) (float64, error) {
	a := textnorm.Prepare(textA, s.clean)
	b := textnorm.Prepare(textB, s.clean)
	fa, fb := Fingerprints(a), Fingerprints(b)
	if len(fa) == 0 && len(fb) == 0 {
		return sameUnsampled(a, b), nil
	}
	return Dice(fa, fb), nil
}

// sameUnsampled scores two texts none of whose n-grams were sampled.
func sameUnsampled(a, b string) float64 {
	sa := strings.ReplaceAll(a, " ", "")
	if sa != strings.ReplaceAll(b, " ", "") || len(NGrams(sa)) == 0 {
		return 0
	}
	return 1
}

// NGrams returns every overlapping NGramSize-rune window of text after removing
// U+0020 spaces. Other whitespace is kept. A text shorter than NGramSize has none.
func NGrams(text string) []string {
	runes := []rune(strings.ReplaceAll(text, " ", ""))
	if len(runes) < NGramSize {
		return nil
	}
	grams := make([]string, 0, len(runes)-NGramSize+1)
	for i := 0; i+NGramSize <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+NGramSize]))
	}
	return grams
}

// Fingerprints hashes the n-grams of text and keeps those divisible by Modulus.
func Fingerprints(text string) Set {
	grams := NGrams(text)
	set := make(Set, len(grams)/Modulus+1)
	for _, g := range grams {
		d := Digest(md5.Sum([]byte(g)))
		if d.Mod(Modulus) == 0 {
			set[d] = struct{}{}
		}
	}
	return set
}

// Dice returns 2|A∩B| / (|A|+|B|). Two empty sets score 0; Score handles that case.
func Dice(a, b Set) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := 0
	for d := range small {
		if _, ok := large[d]; ok {
			shared++
		}
	}
	return float64(2*shared) / float64(total)
}
