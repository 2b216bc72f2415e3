// Package config loads linekit settings from YAML and merges CLI overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CheckConfig configures the balance checker.
type CheckConfig struct {
	// Target is checked when no paths are given on the command line
	Target string `yaml:"target"`

	// ReportSuccess prints "No syntax errors found." for balanced files
	ReportSuccess bool `yaml:"report_success"`

	// ExitCode makes an imbalance fail the command
	ExitCode bool `yaml:"exit_code"`

	// Concurrency bounds how many files are scanned at once
	Concurrency int `yaml:"concurrency"`

	// Extensions selects files when a directory is checked
	Extensions []string `yaml:"extensions"`

	// ExcludeDirs are skipped when a directory is checked
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// ReplaceConfig configures the line-range replacement.
type ReplaceConfig struct {
	Target      string `yaml:"target"`
	Replacement string `yaml:"replacement"`
	StartLine   int    `yaml:"start_line"`
	EndLine     int    `yaml:"end_line"`

	// StrictRange rejects chunks reaching past the end of the target
	StrictRange bool `yaml:"strict_range"`
}

// HistoryConfig configures the replacement journal.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// Config represents linekit configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	Check   CheckConfig   `yaml:"check"`
	Replace ReplaceConfig `yaml:"replace"`
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns the built-in settings: the Profile.tsx target and
// the 1001-1028 replacement range.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Check: CheckConfig{
			Target:        filepath.Join("pages", "Profile.tsx"),
			ReportSuccess: false,
			ExitCode:      false,
			Concurrency:   4,
			Extensions:    []string{".tsx", ".ts", ".jsx", ".js"},
			ExcludeDirs:   []string{"node_modules", ".git", "dist"},
		},
		Replace: ReplaceConfig{
			Target:      filepath.Join("pages", "Profile.tsx"),
			Replacement: "replacement_list.tsx",
			StartLine:   1001,
			EndLine:     1028,
			StrictRange: false,
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  filepath.Join(DirName, "history.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed one is an error.
// Only keys present in the file override defaults, so an explicit
// `false` or `0` is honoured.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, ok := raw["log_level"]; ok {
		cfg.LogLevel = fileCfg.LogLevel
	}

	if section := sectionOf(raw, "check"); section != nil {
		c := fileCfg.Check
		if _, ok := section["target"]; ok {
			cfg.Check.Target = c.Target
		}
		if _, ok := section["report_success"]; ok {
			cfg.Check.ReportSuccess = c.ReportSuccess
		}
		if _, ok := section["exit_code"]; ok {
			cfg.Check.ExitCode = c.ExitCode
		}
		if _, ok := section["concurrency"]; ok {
			cfg.Check.Concurrency = c.Concurrency
		}
		if _, ok := section["extensions"]; ok {
			cfg.Check.Extensions = c.Extensions
		}
		if _, ok := section["exclude_dirs"]; ok {
			cfg.Check.ExcludeDirs = c.ExcludeDirs
		}
	}

	if section := sectionOf(raw, "replace"); section != nil {
		r := fileCfg.Replace
		if _, ok := section["target"]; ok {
			cfg.Replace.Target = r.Target
		}
		if _, ok := section["replacement"]; ok {
			cfg.Replace.Replacement = r.Replacement
		}
		if _, ok := section["start_line"]; ok {
			cfg.Replace.StartLine = r.StartLine
		}
		if _, ok := section["end_line"]; ok {
			cfg.Replace.EndLine = r.EndLine
		}
		if _, ok := section["strict_range"]; ok {
			cfg.Replace.StrictRange = r.StrictRange
		}
	}

	if section := sectionOf(raw, "history"); section != nil {
		h := fileCfg.History
		if _, ok := section["enabled"]; ok {
			cfg.History.Enabled = h.Enabled
		}
		if _, ok := section["db_path"]; ok {
			cfg.History.DBPath = h.DBPath
		}
	}

	return cfg, nil
}

// sectionOf returns the nested mapping stored under key, or nil.
func sectionOf(raw map[string]interface{}, key string) map[string]interface{} {
	section, _ := raw[key].(map[string]interface{})
	return section
}

// Flags holds CLI overrides. Nil fields were not set on the command line.
type Flags struct {
	LogLevel      *string
	ReportSuccess *bool
	ExitCode      *bool
	Concurrency   *int
	Target        *string
	Replacement   *string
	StartLine     *int
	EndLine       *int
	StrictRange   *bool
}

// MergeWithFlags applies non-nil flag values on top of the configuration.
// Target and Replacement belong to the replace command.
func (c *Config) MergeWithFlags(f Flags) {
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.ReportSuccess != nil {
		c.Check.ReportSuccess = *f.ReportSuccess
	}
	if f.ExitCode != nil {
		c.Check.ExitCode = *f.ExitCode
	}
	if f.Concurrency != nil {
		c.Check.Concurrency = *f.Concurrency
	}
	if f.Target != nil {
		c.Replace.Target = *f.Target
	}
	if f.Replacement != nil {
		c.Replace.Replacement = *f.Replacement
	}
	if f.StartLine != nil {
		c.Replace.StartLine = *f.StartLine
	}
	if f.EndLine != nil {
		c.Replace.EndLine = *f.EndLine
	}
	if f.StrictRange != nil {
		c.Replace.StrictRange = *f.StrictRange
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Check.Concurrency < 1 {
		return fmt.Errorf("check.concurrency must be >= 1, got %d", c.Check.Concurrency)
	}

	if c.Replace.StartLine < 1 {
		return fmt.Errorf("replace.start_line must be >= 1, got %d", c.Replace.StartLine)
	}
	if c.Replace.EndLine < c.Replace.StartLine-1 {
		return fmt.Errorf("replace.end_line must be >= start_line-1, got %d-%d", c.Replace.StartLine, c.Replace.EndLine)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
