package fingerprint

import (
	"context"
	"crypto/md5"
	"math/big"
	"testing"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
)

const passage = `Generic Name argues that students should be allowed to design their own summer projects.
Teachers would still review the plans, but the students would choose topics they care about,
which keeps them reading and writing during the long break.`

func TestNGrams(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"too short", "abc", nil},
		{"exact", "abcd", []string{"abcd"}},
		{"spaces stripped", "the quick", []string{"theq", "hequ", "equi", "quic", "uick"}},
		{"newline kept", "ab\ncd", []string{"ab\nc", "b\ncd"}},
		{"runes not bytes", "ééééé", []string{"éééé", "éééé"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NGrams(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("NGrams(%q) = %q, want %q", tc.text, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("NGrams(%q)[%d] = %q, want %q", tc.text, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestNGrams_CountIsLengthMinusThree(t *testing.T) {
	for _, text := range []string{"abcd", "abcdefgh", "a b c d e f g h i j", passage} {
		stripped := 0
		for _, r := range text {
			if r != ' ' {
				stripped++
			}
		}
		if got := len(NGrams(text)); got != stripped-3 {
			t.Errorf("len(NGrams) = %d, want %d", got, stripped-3)
		}
	}
}

func TestDigestMod_MatchesBigInt(t *testing.T) {
	three := big.NewInt(Modulus)
	for _, g := range NGrams(passage) {
		d := Digest(md5.Sum([]byte(g)))
		want := new(big.Int).Mod(new(big.Int).SetBytes(d[:]), three).Uint64()
		if got := d.Mod(Modulus); uint64(got) != want {
			t.Fatalf("Mod(%q) = %d, want %d", g, got, want)
		}
	}
}

func TestFingerprints_OnlyDivisibleDigests(t *testing.T) {
	set := Fingerprints(passage)
	if len(set) == 0 {
		t.Fatal("expected a non-empty fingerprint set for a full passage")
	}
	for d := range set {
		if d.Mod(Modulus) != 0 {
			t.Errorf("digest %x is not divisible by %d", d, Modulus)
		}
	}
}

func TestScore(t *testing.T) {
	s := New(Config{})
	ctx := context.Background()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", passage, passage, 1},
		{"disjoint characters", "aaaaaaaa bbbbbbbb", "cccccccc dddddddd", 0},
		{"both empty", "", "", 0},
		{"too short", "abc", "abc", 0},
		{"too short and different", "abc", "xyz", 0},
		{"unsampled identical", "abcd", "abcd", 1},
		{"unsampled identical after spaces", "ab cd", "abcd", 1},
		{"unsampled different", "abcd", "cats", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Score(ctx, tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScore_SelfSimilarity(t *testing.T) {
	s := New(Config{})
	ctx := context.Background()

	// Several of these keep no fingerprint at all.
	texts := []string{"abcd", "cats", "test", "essay", "hello", "the cat sat", passage}
	for _, text := range texts {
		if len(NGrams(text)) == 0 {
			t.Fatalf("%q has no n-grams", text)
		}
		got, err := s.Score(ctx, text, text)
		if err != nil {
			t.Fatalf("Score(%q): %v", text, err)
		}
		if got != 1 {
			t.Errorf("Score(%q, %q) = %v, want 1 (fingerprints: %d)", text, text, got, len(Fingerprints(text)))
		}
	}
}

func TestScore_SymmetricAndBounded(t *testing.T) {
	s := New(Config{})
	ctx := context.Background()
	other := "Students should be allowed to design their own projects because teachers cannot know every interest."

	ab, _ := s.Score(ctx, passage, other)
	ba, _ := s.Score(ctx, other, passage)
	if ab != ba {
		t.Errorf("asymmetric: %v vs %v", ab, ba)
	}
	if ab < 0 || ab > 1 {
		t.Errorf("score out of range: %v", ab)
	}
}

func TestScore_CleanOption(t *testing.T) {
	ctx := context.Background()
	upper := "GENERIC NAME ARGUES THAT STUDENTS SHOULD DESIGN THEIR OWN SUMMER PROJECTS"
	lower := "generic name argues that students should design their own summer projects"

	if got, _ := New(Config{Clean: true}).Score(ctx, upper, lower); got != 1 {
		t.Errorf("cleaned texts should match exactly, got %v", got)
	}
	if got, _ := New(Config{}).Score(ctx, upper, lower); got != 0 {
		t.Errorf("raw texts share no n-grams, got %v", got)
	}
}

func TestDice(t *testing.T) {
	d := func(b byte) Digest { return Digest{15: b} }
	a := Set{d(1): {}, d(2): {}, d(3): {}}
	b := Set{d(2): {}, d(3): {}, d(4): {}, d(5): {}}
	if got, want := Dice(a, b), 4.0/7.0; got != want {
		t.Errorf("Dice = %v, want %v", got, want)
	}
	if got := Dice(Set{}, Set{}); got != 0 {
		t.Errorf("Dice of empty sets = %v, want 0", got)
	}
	if got := Dice(a, Set{}); got != 0 {
		t.Errorf("Dice with one empty set = %v, want 0", got)
	}
}

func TestMethod(t *testing.T) {
	if New(Config{}).Method() != method.Fingerprint {
		t.Error("expected fingerprint method")
	}
}
