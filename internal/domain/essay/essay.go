package essay

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/essaysim/internal/domain"
)

// MaxIDLength is the maximum essay identifier length.
const MaxIDLength = 256

// Essay is a corpus entry (immutable value object).
type Essay struct {
	id   string
	text string
}

// New validates and creates an Essay.
// The text may be empty: degenerate inputs are scored, not rejected.
func New(id, text string) (Essay, error) {
	if strings.TrimSpace(id) == "" {
		return Essay{}, fmt.Errorf("essay id is required: %w", domain.ErrInvalidEssay)
	}
	if len(id) > MaxIDLength {
		return Essay{}, fmt.Errorf("essay id too long (max %d): %w", MaxIDLength, domain.ErrInvalidEssay)
	}
	return Essay{id: id, text: text}, nil
}

// ID returns the essay identifier.
func (e Essay) ID() string { return e.id }

// Text returns the raw essay text.
func (e Essay) Text() string { return e.text }
