package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config represents the complete proofscout configuration
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Issues  IssuesConfig  `mapstructure:"issues"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ScanConfig controls the tree walk and obligation enrichment
type ScanConfig struct {
	// Model is the Gemini model used for obligation analysis
	Model string `mapstructure:"model"`
	// Workers is the number of concurrent analysis workers.
	// 0 means one worker per available CPU.
	Workers int `mapstructure:"workers"`
	// WebSearch enables the web-search fallback for unresolved imports
	WebSearch bool `mapstructure:"web_search"`
	// MaxImportFileSize is the byte threshold at or above which a resolved
	// import file is excluded from the analysis context
	MaxImportFileSize int `mapstructure:"max_import_file_size"`
}

// IssuesConfig controls GitHub issue creation
type IssuesConfig struct {
	// Label is the label applied to every created issue
	Label string `mapstructure:"label"`
	// Branch is the branch name used in source deep links
	Branch string `mapstructure:"branch"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for the log file; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Model:             "gemini-2.5-pro",
			Workers:           0, // one per CPU
			WebSearch:         false,
			MaxImportFileSize: 25000,
		},
		Issues: IssuesConfig{
			Label:  "proof wanted",
			Branch: "master",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
	}
}

// EffectiveWorkers resolves the worker count, substituting the CPU count
// when Workers is zero.
func (s *ScanConfig) EffectiveWorkers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("scan.model", defaults.Scan.Model)
	viper.SetDefault("scan.workers", defaults.Scan.Workers)
	viper.SetDefault("scan.web_search", defaults.Scan.WebSearch)
	viper.SetDefault("scan.max_import_file_size", defaults.Scan.MaxImportFileSize)

	viper.SetDefault("issues.label", defaults.Issues.Label)
	viper.SetDefault("issues.branch", defaults.Issues.Branch)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "proofscout")
	}
	// Fall back to ~/.config/proofscout
	home, err := os.UserHomeDir()
	if err != nil {
		return ".proofscout"
	}
	return filepath.Join(home, ".config", "proofscout")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
