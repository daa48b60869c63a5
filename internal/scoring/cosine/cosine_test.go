package cosine

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
)

const eps = 1e-9

func score(t *testing.T, s *Scorer, a, b string) float64 {
	t.Helper()
	got, err := s.Score(context.Background(), a, b)
	if err != nil {
		t.Fatalf("Score(%q, %q): unexpected error: %v", a, b, err)
	}
	return got
}

func TestScore_WorkedExample(t *testing.T) {
	s := New(Config{})
	got := score(t, s, "the cat sat", "the cat ran")
	if math.Abs(got-2.0/3.0) > eps {
		t.Errorf("expected 2/3, got %f", got)
	}
}

func TestVectors_WorkedExample(t *testing.T) {
	a := []string{"the", "cat", "sat"}
	b := []string{"the", "cat", "ran"}
	vocab := Vocabulary(a, b)
	if !reflect.DeepEqual(vocab, []string{"cat", "ran", "sat", "the"}) {
		t.Fatalf("unexpected vocabulary: %v", vocab)
	}
	va, vb := Vectors(vocab, a, b)
	if !reflect.DeepEqual(va, []int{1, 0, 1, 1}) {
		t.Errorf("va = %v", va)
	}
	if !reflect.DeepEqual(vb, []int{1, 1, 0, 1}) {
		t.Errorf("vb = %v", vb)
	}
}

func TestScore_Symmetric(t *testing.T) {
	s := New(Config{})
	pairs := [][2]string{
		{"the cat sat on the mat", "a dog sat on the log"},
		{"one two two three three three", "three two one"},
		{"", "non empty"},
	}
	for _, p := range pairs {
		ab := score(t, s, p[0], p[1])
		ba := score(t, s, p[1], p[0])
		if ab != ba {
			t.Errorf("asymmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestScore_SelfSimilarity(t *testing.T) {
	s := New(Config{})
	text := "to be or not to be that is the question"
	if got := score(t, s, text, text); math.Abs(got-1) > eps {
		t.Errorf("self similarity = %v, want 1", got)
	}
}

func TestScore_Degenerate(t *testing.T) {
	s := New(Config{})
	tests := []struct {
		name string
		a, b string
	}{
		{"both empty", "", ""},
		{"left empty", "", "some words"},
		{"right whitespace", "some words", " \n\t "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := score(t, s, tc.a, tc.b); got != 0 {
				t.Errorf("expected 0, got %v", got)
			}
		})
	}
}

func TestScore_Disjoint(t *testing.T) {
	s := New(Config{})
	if got := score(t, s, "alpha beta", "gamma delta"); got != 0 {
		t.Errorf("expected 0 for disjoint vocabularies, got %v", got)
	}
}

func TestScore_CleanOption(t *testing.T) {
	raw := New(Config{})
	clean := New(Config{Clean: true})

	a, b := "The cat sat.", "the cat sat"
	if got := score(t, raw, a, b); math.Abs(got-1) < eps {
		t.Errorf("raw tokens should differ on case and punctuation, got %v", got)
	}
	if got := score(t, clean, a, b); math.Abs(got-1) > eps {
		t.Errorf("cleaned texts should be identical, got %v", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	s := New(Config{})
	got := score(t, s, "a a a b c", "a b b d e f")
	if got < 0 || got > 1 {
		t.Errorf("score out of range: %v", got)
	}
}

func TestMethod(t *testing.T) {
	if New(Config{}).Method() != method.Cosine {
		t.Error("expected cosine method")
	}
}
