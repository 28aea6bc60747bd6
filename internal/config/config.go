package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"codehunter/internal/errors"
	"codehunter/internal/functions"
	"codehunter/internal/history"
	"codehunter/internal/walker"
)

// Dir is the per-project configuration directory.
const Dir = ".codehunter"

// FileName is the configuration file written by WriteDefault.
const FileName = "config.toml"

// EnvPrefix prefixes environment overrides, e.g.
// CODEHUNTER_ANALYSIS_MAXFUNCTIONLINES=120.
const EnvPrefix = "CODEHUNTER"

// Config represents the complete codehunter configuration
type Config struct {
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" toml:"analysis"`
	Walker   WalkerConfig   `json:"walker" mapstructure:"walker" toml:"walker"`
	History  HistoryConfig  `json:"history" mapstructure:"history" toml:"history"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging" toml:"logging"`
	Output   OutputConfig   `json:"output" mapstructure:"output" toml:"output"`
}

// AnalysisConfig contains analyzer thresholds
type AnalysisConfig struct {
	MaxFunctionLines int      `json:"maxFunctionLines" mapstructure:"maxFunctionLines" toml:"maxFunctionLines"`
	IgnoredFunctions []string `json:"ignoredFunctions" mapstructure:"ignoredFunctions" toml:"ignoredFunctions"`
}

// WalkerConfig controls which parts of the tree are visited
type WalkerConfig struct {
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs" toml:"ignoreDirs"`
	Exclude    []string `json:"exclude" mapstructure:"exclude" toml:"exclude"`
}

// HistoryConfig contains run history settings
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled" toml:"enabled"`
	Path    string `json:"path" mapstructure:"path" toml:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format" toml:"format"`
	Level  string `json:"level" mapstructure:"level" toml:"level"`
}

// OutputConfig contains report rendering defaults
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format" toml:"format"`
}

var (
	outputFormats = []string{"human", "json", "yaml", "yml", "sarif"}
	logFormats    = []string{"human", "json"}
	logLevels     = []string{"debug", "info", "warn", "warning", "error"}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxFunctionLines: functions.DefaultMaxLines,
			IgnoredFunctions: append([]string(nil), functions.DefaultIgnored...),
		},
		Walker: WalkerConfig{
			IgnoreDirs: append([]string(nil), walker.DefaultIgnoreDirs...),
			Exclude:    []string{},
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    history.DefaultPath,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "warn",
		},
		Output: OutputConfig{
			Format: "human",
		},
	}
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("analysis.maxFunctionLines", cfg.Analysis.MaxFunctionLines)
	v.SetDefault("analysis.ignoredFunctions", cfg.Analysis.IgnoredFunctions)
	v.SetDefault("walker.ignoreDirs", cfg.Walker.IgnoreDirs)
	v.SetDefault("walker.exclude", cfg.Walker.Exclude)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.path", cfg.History.Path)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("output.format", cfg.Output.Format)
}

// LoadConfig loads configuration from .codehunter/config.{toml,json,yaml}
// under projectRoot, applying CODEHUNTER_* environment overrides. A missing
// file yields the defaults.
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(projectRoot, Dir))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.New(errors.ConfigInvalid, "failed to read configuration", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "failed to decode configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "invalid configuration", err)
	}
	return &cfg, nil
}

// Path returns the configuration file path under projectRoot.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, FileName)
}

const defaultHeader = `# codehunter configuration
#
# analysis.maxFunctionLines   longest function not reported as too large
# analysis.ignoredFunctions   names skipped by the size and duplicate checks
# walker.ignoreDirs           directory names never descended into
# walker.exclude              glob patterns matched against relative paths and base names
# history.enabled             record every diagnosis run
# history.path                run history database, relative to the project root
# logging.level               debug, info, warn or error
# logging.format              human or json
# output.format               human, json, yaml or sarif
#
# Every key can be overridden with CODEHUNTER_<SECTION>_<KEY>.

`

// WriteDefault writes the default configuration to .codehunter/config.toml.
// An existing file is kept unless force is set.
func WriteDefault(projectRoot string, force bool) (string, error) {
	path := Path(projectRoot)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists", path)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(defaultHeader)
	if err := toml.NewEncoder(&buf).Encode(DefaultConfig()); err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// HistoryPath resolves the history database path against projectRoot.
func (c *Config) HistoryPath(projectRoot string) string {
	if filepath.IsAbs(c.History.Path) {
		return c.History.Path
	}
	return filepath.Join(projectRoot, filepath.FromSlash(c.History.Path))
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Analysis.MaxFunctionLines < 1 {
		return &ConfigError{Field: "analysis.maxFunctionLines", Message: "must be at least 1"}
	}
	if err := walker.ValidatePatterns(c.Walker.Exclude); err != nil {
		return &ConfigError{Field: "walker.exclude", Message: err.Error()}
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return &ConfigError{Field: "history.path", Message: "must be set when history is enabled"}
	}
	if !oneOf(c.Logging.Level, logLevels) {
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	if !oneOf(c.Logging.Format, logFormats) {
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q", c.Logging.Format)}
	}
	if !oneOf(c.Output.Format, outputFormats) {
		return &ConfigError{Field: "output.format", Message: fmt.Sprintf("unknown format %q", c.Output.Format)}
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
