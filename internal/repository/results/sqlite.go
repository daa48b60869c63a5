package results

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/kailas-cloud/essaysim/internal/domain/result"
)

// SchemaSQL creates the results table.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS comparison_results (
    method          TEXT NOT NULL,
    essay_a_id      TEXT NOT NULL,
    essay_b_id      TEXT NOT NULL,
    elapsed_seconds REAL NOT NULL,
    score           REAL,
    error           TEXT,
    PRIMARY KEY (method, essay_a_id, essay_b_id)
);
`

// SQLiteSink stores every result, failed ones included, in a SQLite database.
type SQLiteSink struct {
	path string
}

// NewSQLiteSink creates a sink writing to the database at path.
func NewSQLiteSink(path string) *SQLiteSink {
	return &SQLiteSink{path: path}
}

// Open opens the database and applies the schema.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := conn.Exec(SchemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return conn, nil
}

// Write replaces the stored results with the table in one transaction.
func (s *SQLiteSink) Write(ctx context.Context, table *result.Table) error {
	conn, err := Open(s.path)
	if err != nil {
		return err
	}
	defer conn.Close() //nolint:errcheck // results are committed before close

	return SaveResults(ctx, conn, table)
}

// SaveResults deletes previous rows and inserts the table's results.
func SaveResults(ctx context.Context, conn *sql.DB, table *result.Table) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM comparison_results`); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO comparison_results
		(method, essay_a_id, essay_b_id, elapsed_seconds, score, error) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // closed with the tx

	for _, m := range table.Methods() {
		for _, r := range table.Results(m) {
			var score sql.NullFloat64
			var errText sql.NullString
			if r.Err() != nil {
				errText = sql.NullString{String: r.Err().Error(), Valid: true}
			} else {
				score = sql.NullFloat64{Float64: r.Score(), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx,
				string(m), r.Key().A(), r.Key().B(), r.Elapsed().Seconds(), score, errText,
			); err != nil {
				return fmt.Errorf("insert %s %s: %w", m, r.Key(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
