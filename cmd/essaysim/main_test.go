package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeFixtures(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	writeFile(t, dir, "essays.csv", "essay_id,full_text\n"+
		"e2,\"The big dog ran home.\nA small cat sat.\"\n"+
		"e1,\"The large dog ran home.\nA tiny cat sat.\"\n"+
		"e3,Completely unrelated words here\n")
	writeFile(t, dir, "function.txt", "the\na\n")
	writeFile(t, dir, "core.txt", "big\nlarge\nsmall\ntiny\n")
	writeFile(t, dir, "lexicon.tsv", "# word\tsynonym\nlarge\tbig\ntiny\tsmall\n")
	cfgPath = writeFile(t, dir, "test.yaml", `
corpus:
  path: `+filepath.Join(dir, "essays.csv")+`
wordlists:
  function_words: `+filepath.Join(dir, "function.txt")+`
  core_vocab: `+filepath.Join(dir, "core.txt")+`
lexicon:
  backend: static
  path: `+filepath.Join(dir, "lexicon.tsv")+`
scoring:
  workers: 2
  chunk_size: 2
output:
  format: csv
  path: `+filepath.Join(dir, "results.csv")+`
`)
	return dir, cfgPath
}

func TestRun_WritesCSV(t *testing.T) {
	t.Setenv("ENV", "test")
	dir, cfgPath := writeFixtures(t)

	if err := newCLI().Run([]string{"essaysim", "--config", cfgPath, "--log-level", "error", "run"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "results.csv"))
	if err != nil {
		t.Fatalf("open results: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	// header + 3 pairs x 3 methods
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}
	if strings.Join(rows[0], ",") != "Method,Essay A ID,Essay B ID,Elapsed Time,Similarity Score" {
		t.Errorf("header = %v", rows[0])
	}
	for _, r := range rows[1:] {
		if r[1] >= r[2] {
			t.Errorf("pair not ordered by id: %v", r)
		}
	}
}

func TestRun_FlagOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	dir, cfgPath := writeFixtures(t)
	out := filepath.Join(dir, "cosine.csv")

	err := newCLI().Run([]string{
		"essaysim", "--config", cfgPath, "--log-level", "error",
		"run", "--methods", "cosine", "--output", out, "--workers", "1",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), data)
	}
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l, "Cosine,") {
			t.Errorf("unexpected row %q", l)
		}
	}
}

func TestRun_SQLiteOutput(t *testing.T) {
	t.Setenv("ENV", "test")
	dir, cfgPath := writeFixtures(t)
	out := filepath.Join(dir, "results.db")

	err := newCLI().Run([]string{
		"essaysim", "--config", cfgPath, "--log-level", "error",
		"run", "--format", "sqlite", "--output", out,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("expected sqlite file, stat err %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Setenv("ENV", "test")
	_, cfgPath := writeFixtures(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown method", []string{"run", "--methods", "jaccard"}},
		{"bad format", []string{"run", "--format", "parquet"}},
		{"missing corpus", []string{"run", "--corpus", "/nonexistent/essays.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"essaysim", "--config", cfgPath, "--log-level", "error"}, tt.args...)
			if err := newCLI().Run(args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSeed_RequiresValkeyBackend(t *testing.T) {
	t.Setenv("ENV", "test")
	_, cfgPath := writeFixtures(t)

	err := newCLI().Run([]string{"essaysim", "--config", cfgPath, "lexicon", "seed"})
	if err == nil || !strings.Contains(err.Error(), "valkey") {
		t.Errorf("expected backend error, got %v", err)
	}
}
