package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
)

// Config holds the essaysim configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Wordlists WordlistsConfig `yaml:"wordlists"`
	Lexicon   LexiconConfig   `yaml:"lexicon"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Output    OutputConfig    `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int `yaml:"max_body_bytes"`
}

// MetricsConfig holds the batch-run metrics listener settings.
type MetricsConfig struct {
	Port int `yaml:"port"` // 0 = disabled
}

// CorpusConfig describes the essay source file.
type CorpusConfig struct {
	Path       string `yaml:"path"`
	IDColumn   string `yaml:"id_column"`
	TextColumn string `yaml:"text_column"`
}

// WordlistsConfig points at the newline-separated SMPC wordlists.
type WordlistsConfig struct {
	FunctionWords string `yaml:"function_words"`
	CoreVocab     string `yaml:"core_vocab"`
}

// Lexicon backends.
const (
	LexiconStatic = "static"
	LexiconValkey = "valkey"
)

// LexiconConfig selects and configures the synonym lookup backend.
type LexiconConfig struct {
	Backend          string   `yaml:"backend"` // static, valkey (default: static)
	Path             string   `yaml:"path"`    // TSV file for the static backend
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	CacheSize        int      `yaml:"cache_size"` // 0 = default, <0 = disabled
}

// MethodConfig holds per-method text preparation.
type MethodConfig struct {
	Clean bool `yaml:"clean"`
}

// ScoringConfig holds scorer and worker pool settings.
type ScoringConfig struct {
	Methods          []string     `yaml:"methods"`
	Normalize        []string     `yaml:"normalize"`
	Workers          int          `yaml:"workers"`
	ChunkSize        int          `yaml:"chunk_size"`
	QueueMultiplier  int          `yaml:"queue_multiplier"`
	ProfileCacheSize int          `yaml:"profile_cache_size"`
	Cosine           MethodConfig `yaml:"cosine"`
	Fingerprint      MethodConfig `yaml:"fingerprint"`
}

// Output formats.
const (
	OutputCSV    = "csv"
	OutputSQLite = "sqlite"
)

// OutputConfig selects the result sink.
type OutputConfig struct {
	Format string `yaml:"format"` // csv, sqlite (default: csv)
	Path   string `yaml:"path"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML file.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20
	}
	if c.Corpus.IDColumn == "" {
		c.Corpus.IDColumn = "essay_id"
	}
	if c.Corpus.TextColumn == "" {
		c.Corpus.TextColumn = "full_text"
	}
	if c.Lexicon.Backend == "" {
		c.Lexicon.Backend = LexiconStatic
	}
	if c.Lexicon.KeyPrefix == "" {
		c.Lexicon.KeyPrefix = "essaysim:"
	}
	if c.Lexicon.ReadinessTimeout <= 0 {
		c.Lexicon.ReadinessTimeout = 10
	}
	if c.Lexicon.CacheSize == 0 {
		c.Lexicon.CacheSize = 10000
	}
	if len(c.Scoring.Methods) == 0 {
		for _, m := range method.All {
			c.Scoring.Methods = append(c.Scoring.Methods, string(m))
		}
	}
	if len(c.Scoring.Normalize) == 0 {
		c.Scoring.Normalize = []string{string(method.SMPC)}
	}
	if c.Scoring.Workers <= 0 {
		c.Scoring.Workers = runtime.NumCPU()
	}
	if c.Scoring.ChunkSize <= 0 {
		c.Scoring.ChunkSize = 100
	}
	if c.Scoring.QueueMultiplier <= 0 {
		c.Scoring.QueueMultiplier = 2
	}
	if c.Scoring.ProfileCacheSize == 0 {
		c.Scoring.ProfileCacheSize = 1024
	}
	if c.Output.Format == "" {
		c.Output.Format = OutputCSV
	}
	if c.Output.Path == "" {
		c.Output.Path = "results." + c.Output.Format
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}

	methods, err := c.Scoring.ParsedMethods()
	if err != nil {
		return fmt.Errorf("scoring.methods: %w", err)
	}
	normalized, err := c.Scoring.NormalizedMethods()
	if err != nil {
		return fmt.Errorf("scoring.normalize: %w", err)
	}
	if !slices.Contains(normalized, method.SMPC) {
		return fmt.Errorf("scoring.normalize must include %q", method.SMPC)
	}

	if slices.Contains(methods, method.SMPC) {
		if c.Wordlists.FunctionWords == "" || c.Wordlists.CoreVocab == "" {
			return fmt.Errorf("wordlists.function_words and wordlists.core_vocab are required for %q", method.SMPC)
		}
	}

	switch c.Lexicon.Backend {
	case LexiconStatic:
		if c.Lexicon.Path == "" && slices.Contains(methods, method.SMPC) {
			return fmt.Errorf("lexicon.path is required for the %q backend", LexiconStatic)
		}
	case LexiconValkey:
		if len(c.Lexicon.Addrs) == 0 {
			return fmt.Errorf("lexicon.addrs is required for the %q backend", LexiconValkey)
		}
	default:
		return fmt.Errorf("lexicon.backend must be %q or %q, got %q", LexiconStatic, LexiconValkey, c.Lexicon.Backend)
	}

	switch c.Output.Format {
	case OutputCSV, OutputSQLite:
		// ok
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", OutputCSV, OutputSQLite, c.Output.Format)
	}
	return nil
}

// ParsedMethods returns the configured methods in order, without duplicates.
func (c ScoringConfig) ParsedMethods() ([]method.Method, error) {
	return method.ParseList(c.Methods) //nolint:wrapcheck // caller adds the field name
}

// NormalizedMethods returns the methods whose corpus scores are min-max normalized.
func (c ScoringConfig) NormalizedMethods() ([]method.Method, error) {
	return method.ParseList(c.Normalize) //nolint:wrapcheck // caller adds the field name
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
