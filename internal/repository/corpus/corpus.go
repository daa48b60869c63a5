// Package corpus loads essays and wordlists from files.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/essaysim/internal/domain"
	"github.com/kailas-cloud/essaysim/internal/domain/essay"
	"github.com/kailas-cloud/essaysim/internal/domain/wordlist"
)

// LoadEssays reads essays from a CSV file with a header row.
func LoadEssays(path, idColumn, textColumn string) ([]essay.Essay, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	essays, err := ReadEssays(f, idColumn, textColumn)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return essays, nil
}

// ReadEssays parses CSV essays. Quoted fields may span lines; extra columns are ignored.
func ReadEssays(r io.Reader, idColumn, textColumn string) ([]essay.Essay, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header: %w", domain.ErrInvalidCorpus)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idIdx, textIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case idColumn:
			idIdx = i
		case textColumn:
			textIdx = i
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("column %q not found: %w", idColumn, domain.ErrInvalidCorpus)
	}
	if textIdx < 0 {
		return nil, fmt.Errorf("column %q not found: %w", textColumn, domain.ErrInvalidCorpus)
	}

	var essays []essay.Essay
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if idIdx >= len(rec) || textIdx >= len(rec) {
			return nil, fmt.Errorf("line %d: short record: %w", line, domain.ErrInvalidCorpus)
		}
		e, err := essay.New(rec[idIdx], rec[textIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		essays = append(essays, e)
	}
	return essays, nil
}

// LoadWordlist reads a newline-separated wordlist.
func LoadWordlist(path string) (wordlist.Set, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return wordlist.Set{}, fmt.Errorf("open wordlist %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	set, err := wordlist.Parse(f)
	if err != nil {
		return wordlist.Set{}, fmt.Errorf("wordlist %s: %w", path, err)
	}
	return set, nil
}
