package essay

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/essaysim/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	e, err := New("0059830c", "Some essay text.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID() != "0059830c" {
		t.Errorf("ID() = %q", e.ID())
	}
	if e.Text() != "Some essay text." {
		t.Errorf("Text() = %q", e.Text())
	}
}

func TestNew_EmptyTextAllowed(t *testing.T) {
	if _, err := New("e1", ""); err != nil {
		t.Fatalf("empty text must be accepted, got %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too long", strings.Repeat("x", MaxIDLength+1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, "text")
			if !errors.Is(err, domain.ErrInvalidEssay) {
				t.Fatalf("expected ErrInvalidEssay, got %v", err)
			}
		})
	}
}
