// Package config handles global configuration loading using viper.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"firestige.xyz/framedump/internal/core"
)

// Config represents the top-level configuration.
// Maps to the `framedump:` root key in YAML.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Input   InputConfig   `mapstructure:"input"`
	Report  ReportConfig  `mapstructure:"report"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Workers int           `mapstructure:"workers"` // 0 = GOMAXPROCS
}

// configRoot wraps Config under the `framedump:` YAML root key.
type configRoot struct {
	Framedump Config `mapstructure:"framedump"`
}

// ─── Input ───

// InputConfig selects how capture files are read.
type InputConfig struct {
	Format InputFormat `mapstructure:"format"`
}

// ─── Report ───

// ReportConfig selects the report encoding and destination.
type ReportConfig struct {
	Format ReportFormat `mapstructure:"format"`
	Output string       `mapstructure:"output"` // "-" = stdout
}

// ─── Metrics ───

// MetricsConfig contains tally metrics export settings.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"` // Prometheus textfile path, empty = disabled
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string           `mapstructure:"level"`   // trace / debug / info / warn / error
	Format  string           `mapstructure:"format"`  // pattern / text / json / prefixed
	Pattern string           `mapstructure:"pattern"` // Only for format=pattern
	Time    string           `mapstructure:"time"`    // Go time layout
	Caller  bool             `mapstructure:"caller"`  // Record the calling file:line for %caller
	File    FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// Load reads the configuration file at path. An empty path yields the
// defaults, still subject to FRAMEDUMP_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Key "framedump.log.level" maps to env "FRAMEDUMP_LOG_LEVEL".
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&root, hook); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", core.ErrConfigInvalid, err)
	}
	cfg := root.Framedump

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("framedump.log.level", "info")
	v.SetDefault("framedump.log.format", "pattern")
	v.SetDefault("framedump.log.pattern", "%time [%level] %msg %field\n")
	v.SetDefault("framedump.log.time", "2006-01-02 15:04:05")
	v.SetDefault("framedump.log.caller", false)
	v.SetDefault("framedump.log.file.enabled", false)
	v.SetDefault("framedump.log.file.path", "/var/log/framedump/framedump.log")
	v.SetDefault("framedump.log.file.rotation.max_size_mb", 100)
	v.SetDefault("framedump.log.file.rotation.max_age_days", 30)
	v.SetDefault("framedump.log.file.rotation.max_backups", 5)
	v.SetDefault("framedump.log.file.rotation.compress", true)

	// Input / report defaults
	v.SetDefault("framedump.input.format", "auto")
	v.SetDefault("framedump.report.format", "text")
	v.SetDefault("framedump.report.output", "-")

	v.SetDefault("framedump.metrics.textfile", "")
	v.SetDefault("framedump.workers", 0)
}

// ValidateAndApplyDefaults validates configuration and applies runtime defaults.
func (cfg *Config) ValidateAndApplyDefaults() error {
	// ── Log validation ──
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("%w: invalid log level: %s (must be trace/debug/info/warn/error)", core.ErrConfigInvalid, cfg.Log.Level)
	}
	validFormats := map[string]bool{"pattern": true, "text": true, "json": true, "prefixed": true}
	if !validFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("%w: invalid log format: %s (must be pattern/text/json/prefixed)", core.ErrConfigInvalid, cfg.Log.Format)
	}
	if cfg.Log.File.Enabled && cfg.Log.File.Path == "" {
		return fmt.Errorf("%w: log.file.path is required when log.file.enabled=true", core.ErrConfigInvalid)
	}

	// ── Report validation ──
	if cfg.Report.Output == "" {
		cfg.Report.Output = "-"
	}

	// ── Workers ──
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", core.ErrConfigInvalid, cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	return nil
}
