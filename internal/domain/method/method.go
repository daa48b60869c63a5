package method

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/essaysim/internal/domain"
)

// Method is a pairwise comparison algorithm.
type Method string

// Comparison method constants.
const (
	// Cosine compares word-frequency vectors over the shared vocabulary.
	Cosine Method = "cosine"
	// Fingerprint compares sampled hashed 4-gram sets via the Dice coefficient.
	Fingerprint Method = "fingerprint"
	// SMPC counts semantically matching paragraph pairs.
	SMPC Method = "smpc"
)

// All lists the supported methods in their canonical run order.
var All = []Method{Cosine, SMPC, Fingerprint}

// IsValid checks if the method is one of the supported values.
func (m Method) IsValid() bool {
	return m == Cosine || m == Fingerprint || m == SMPC
}

// Label returns the display name written to result files.
func (m Method) Label() string {
	switch m {
	case Cosine:
		return "Cosine"
	case Fingerprint:
		return "Fingerprint"
	case SMPC:
		return "SMPC"
	default:
		return string(m)
	}
}

// Parse converts a case-insensitive method name into a Method.
func Parse(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("method %q: %w", s, domain.ErrUnknownMethod)
	}
	return m, nil
}

// ParseList converts method names into Methods, dropping duplicates while keeping order.
func ParseList(names []string) ([]Method, error) {
	out := make([]Method, 0, len(names))
	seen := make(map[Method]bool, len(names))
	for _, n := range names {
		m, err := Parse(n)
		if err != nil {
			return nil, err
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}
