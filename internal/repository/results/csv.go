// Package results writes a compared corpus to its destination.
package results

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kailas-cloud/essaysim/internal/domain/result"
)

// CSVHeader is the first row of every CSV result file.
var CSVHeader = []string{"Method", "Essay A ID", "Essay B ID", "Elapsed Time", "Similarity Score"}

// CSVSink writes successful results to a CSV file. Failed comparisons are not written.
type CSVSink struct {
	path string
}

// NewCSVSink creates a sink writing to path. "-" writes to stdout.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Write replaces the file with the table's results.
func (s *CSVSink) Write(ctx context.Context, table *result.Table) error {
	if s.path == "-" {
		return WriteCSV(ctx, os.Stdout, table)
	}

	f, err := os.Create(filepath.Clean(s.path))
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	if err := WriteCSV(ctx, f, table); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}

// WriteCSV writes the header and one row per successful result, in method order, then pair order.
func WriteCSV(ctx context.Context, w io.Writer, table *result.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range table.Methods() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, r := range table.Results(m) {
			if r.Err() != nil {
				continue
			}
			row := []string{
				m.Label(),
				r.Key().A(),
				r.Key().B(),
				formatFloat(r.Elapsed().Seconds()),
				formatFloat(r.Score()),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
