package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
)

func validConfig() Config {
	cfg := Config{
		Wordlists: WordlistsConfig{FunctionWords: "fw.txt", CoreVocab: "core.txt"},
		Lexicon:   LexiconConfig{Path: "lexicon.tsv"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"invalid port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"invalid metrics port", func(c *Config) { c.Metrics.Port = -1 }, "metrics.port"},
		{"unknown method", func(c *Config) { c.Scoring.Methods = []string{"cosine", "jaccard"} }, "scoring.methods"},
		{"normalize without smpc", func(c *Config) { c.Scoring.Normalize = []string{"cosine"} }, "scoring.normalize must include"},
		{"missing wordlists", func(c *Config) { c.Wordlists.CoreVocab = "" }, "wordlists"},
		{"missing lexicon path", func(c *Config) { c.Lexicon.Path = "" }, "lexicon.path"},
		{"valkey without addrs", func(c *Config) { c.Lexicon.Backend = LexiconValkey }, "lexicon.addrs"},
		{"unknown backend", func(c *Config) { c.Lexicon.Backend = "wordnet" }, "lexicon.backend"},
		{"unknown output", func(c *Config) { c.Output.Format = "parquet" }, "output.format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidate_SMPCResourcesOptionalWithoutSMPC(t *testing.T) {
	cfg := Config{Scoring: ScoringConfig{Methods: []string{"cosine", "fingerprint"}}}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Corpus.IDColumn != "essay_id" || cfg.Corpus.TextColumn != "full_text" {
		t.Errorf("unexpected corpus columns: %q, %q", cfg.Corpus.IDColumn, cfg.Corpus.TextColumn)
	}
	if cfg.Lexicon.Backend != LexiconStatic {
		t.Errorf("expected Backend=%q, got %q", LexiconStatic, cfg.Lexicon.Backend)
	}
	if cfg.Lexicon.KeyPrefix != "essaysim:" {
		t.Errorf("expected KeyPrefix='essaysim:', got %q", cfg.Lexicon.KeyPrefix)
	}
	if cfg.Scoring.Workers != runtime.NumCPU() {
		t.Errorf("expected Workers=%d, got %d", runtime.NumCPU(), cfg.Scoring.Workers)
	}
	if cfg.Scoring.ChunkSize != 100 || cfg.Scoring.QueueMultiplier != 2 {
		t.Errorf("unexpected pool defaults: chunk=%d queue=%d", cfg.Scoring.ChunkSize, cfg.Scoring.QueueMultiplier)
	}
	if cfg.Scoring.Cosine.Clean || cfg.Scoring.Fingerprint.Clean {
		t.Error("cleaning must be off by default")
	}
	methods, err := cfg.Scoring.ParsedMethods()
	if err != nil || len(methods) != len(method.All) {
		t.Errorf("expected all methods by default, got %v (%v)", methods, err)
	}
	if cfg.Output.Format != OutputCSV || cfg.Output.Path != "results.csv" {
		t.Errorf("unexpected output defaults: %+v", cfg.Output)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 9000, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Lexicon: LexiconConfig{KeyPrefix: "custom:", CacheSize: -1},
		Scoring: ScoringConfig{Workers: 8, ChunkSize: 10, Normalize: []string{"smpc", "cosine"}},
		Output:  OutputConfig{Format: OutputSQLite},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 || cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("http settings overridden: %+v", cfg.HTTP)
	}
	if cfg.Lexicon.KeyPrefix != "custom:" || cfg.Lexicon.CacheSize != -1 {
		t.Errorf("lexicon settings overridden: %+v", cfg.Lexicon)
	}
	if cfg.Scoring.Workers != 8 || cfg.Scoring.ChunkSize != 10 || len(cfg.Scoring.Normalize) != 2 {
		t.Errorf("scoring settings overridden: %+v", cfg.Scoring)
	}
	if cfg.Output.Path != "results.sqlite" {
		t.Errorf("expected Path='results.sqlite', got %q", cfg.Output.Path)
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("ESSAYSIM_TEST_WORKERS", "3")
	path := filepath.Join(t.TempDir(), "test.yaml")
	data := `
scoring:
  workers: ${ESSAYSIM_TEST_WORKERS}
  methods: [cosine, fingerprint]
  cosine:
    clean: true
output:
  format: ${ESSAYSIM_TEST_UNSET:-sqlite}
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Scoring.Workers != 3 {
		t.Errorf("expected Workers=3, got %d", cfg.Scoring.Workers)
	}
	if !cfg.Scoring.Cosine.Clean {
		t.Error("expected cosine.clean=true")
	}
	if cfg.Output.Format != OutputSQLite {
		t.Errorf("expected default expansion to sqlite, got %q", cfg.Output.Format)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
