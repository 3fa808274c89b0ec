// Package config provides configuration types and defaults for sdktable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/sdktable/internal/flags"
	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/tracing"
)

// Storage backends understood by TableConfig.Backend.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for sdktable.
type Config struct {
	Table   TableConfig     `mapstructure:"table"`
	Resolve ResolveConfig   `mapstructure:"resolve"`
	Log     LogConfig       `mapstructure:"log"`
	Watch   WatchConfig     `mapstructure:"watch"`
	Tracing tracing.Config  `mapstructure:"tracing"`
	Cache   CacheConfig     `mapstructure:"cache"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// TableConfig selects where the table is persisted.
type TableConfig struct {
	// Backend is "yaml" (default) or "sqlite".
	Backend string `mapstructure:"backend"`

	// Path is the table file. For yaml a directory resolves to
	// dir/sdk.table.yaml; empty means ~/.config/sdktable/sdk.table.yaml.
	Path string `mapstructure:"path"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `mapstructure:"sqlite_path"`
}

// ResolveConfig tunes derived-entry resolution.
type ResolveConfig struct {
	HintPrefix  string `mapstructure:"hint_prefix"`
	DefaultType string `mapstructure:"default_type"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	Path  string `mapstructure:"path"`
}

// WatchConfig controls the table file watcher.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// CacheConfig controls the SDK metadata cache.
type CacheConfig struct {
	MetadataTTL time.Duration `mapstructure:"metadata_ttl"`
}

// DefaultConfigDir returns ~/.config/sdktable, or "" if the home dir is unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sdktable")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/sdktable/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// DefaultSQLitePath returns ~/.config/sdktable/sdktable.db.
func DefaultSQLitePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "sdktable.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		Table: TableConfig{
			Backend:    BackendYAML,
			Path:       "", // resolved by paths.ResolveTableFile
			SQLitePath: DefaultSQLitePath(),
		},
		Resolve: ResolveConfig{
			HintPrefix:  "jdk",
			DefaultType: "JavaSDK",
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
		Tracing: tc,
		Cache: CacheConfig{
			MetadataTTL: 10 * time.Minute,
		},
		Flags: map[string]bool{
			flags.FlagEnvHints:     true,
			flags.FlagSQLiteBackup: true,
		},
	}
}

// Validate runs every section validator and returns the first failure.
func (c Config) Validate() error {
	if err := ValidateTable(c.Table); err != nil {
		return err
	}
	if err := ValidateResolve(c.Resolve); err != nil {
		return err
	}
	if err := ValidateLog(c.Log); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if c.Cache.MetadataTTL < 0 {
		return fmt.Errorf("cache.metadata_ttl must not be negative, got %s", c.Cache.MetadataTTL)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTable checks the storage settings.
func ValidateTable(t TableConfig) error {
	switch t.Backend {
	case "", BackendYAML:
	case BackendSQLite:
		if t.SQLitePath == "" {
			return fmt.Errorf("table.sqlite_path is required when backend is %q", BackendSQLite)
		}
	default:
		return fmt.Errorf("table.backend must be %q or %q, got %q", BackendYAML, BackendSQLite, t.Backend)
	}
	return nil
}

// ValidateResolve checks resolution settings. Empty values use defaults.
func ValidateResolve(r ResolveConfig) error {
	if strings.ContainsAny(r.HintPrefix, " \t") {
		return fmt.Errorf("resolve.hint_prefix must not contain whitespace, got %q", r.HintPrefix)
	}
	if strings.Contains(r.HintPrefix, ".") {
		return fmt.Errorf("resolve.hint_prefix must not contain '.', got %q", r.HintPrefix)
	}
	return nil
}

// ValidateLog checks the log level.
func ValidateLog(l LogConfig) error {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", l.Level)
	}
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if !tracing.ValidExporter(tc.Exporter) {
		return fmt.Errorf("tracing.exporter must be one of none, file, stdout, otlp; got %q", tc.Exporter)
	}

	// Path requirements only matter when tracing is on.
	if tc.Enabled {
		if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is %q", tracing.ExporterFile)
		}
		if tc.Exporter == tracing.ExporterOTLP && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is %q", tracing.ExporterOTLP)
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# sdktable configuration

# Where the SDK table is stored
table:
  backend: yaml            # yaml (default) or sqlite
  # path: ~/.config/sdktable/sdk.table.yaml
  # sqlite_path: ~/.config/sdktable/sdktable.db

# Derived entry resolution
resolve:
  hint_prefix: jdk         # hints are looked up as <hint_prefix>.<name>
  default_type: JavaSDK    # type checked when 'resolve' is called without --type

# Home paths for SDKs that are not in the table.
# Keys are <hint_prefix>.<name>. SDKTABLE_JDK_<NAME> environment variables
# are always consulted; plain JDK_<NAME> ones only with the env-hints flag.
hints:
  # jdk:
  #   zulu-17: /usr/lib/jvm/zulu-17

log:
  level: info              # debug, info, warn, error
  # path: ~/.config/sdktable/debug.log

watch:
  debounce: 100ms

cache:
  metadata_ttl: 10m        # how long release/VERSION files are memoised

# Distributed tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/sdktable/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

flags:
  env-hints: true          # consult unprefixed JDK_<NAME> variables for hints
  sqlite-backup: true      # copy the database to .bak before migrating
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
