package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"keyclaim/keys"
	"keyclaim/log"

	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.toml"
	envPrefix      = "KEYCLAIM"
)

// GetConfigDir returns the path to the application's configuration directory.
// KEYCLAIM_HOME overrides the default ~/.keyclaim.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(envPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	return log.GetConfigDir()
}

// Config represents the application configuration
type Config struct {
	Layout LayoutConfig `mapstructure:"layout"`
	Log    LogSettings  `mapstructure:"log"`
	// KeyMap adds raw key strings on top of the built-in table.
	KeyMap []KeyMapping `mapstructure:"keymap"`
}

// LayoutConfig controls the sidebar geometry.
type LayoutConfig struct {
	// ExpandedWidth is the sidebar width in columns when expanded or locked.
	ExpandedWidth int `mapstructure:"expanded_width"`
	// CompactWidth is the sidebar width in columns when compact.
	CompactWidth int `mapstructure:"compact_width"`
	// MobileBreakpoint is the terminal width below which the sidebar becomes a drawer.
	MobileBreakpoint int `mapstructure:"mobile_breakpoint"`
	// StartCompact starts the sidebar compact when no saved state exists.
	StartCompact bool `mapstructure:"start_compact"`
	// RememberLayout persists compact/locked between runs.
	RememberLayout bool `mapstructure:"remember_layout"`
}

// LogSettings mirrors log.LogConfig in a form viper can decode.
type LogSettings struct {
	Enabled    bool   `mapstructure:"enabled"`
	Dir        string `mapstructure:"dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxFiles   int    `mapstructure:"max_files"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// KeyMapping binds one raw key string (as reported by bubbletea) to a logical key name.
type KeyMapping struct {
	Raw string `mapstructure:"raw"`
	Key string `mapstructure:"key"`
}

// LogConfig converts the settings for log.Initialize.
func (s LogSettings) LogConfig() *log.LogConfig {
	return &log.LogConfig{
		LogsEnabled: s.Enabled,
		LogsDir:     s.Dir,
		LogMaxSize:  s.MaxSizeMB,
		LogMaxFiles: s.MaxFiles,
		LogMaxAge:   s.MaxAgeDays,
		LogCompress: s.Compress,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	defaults := log.DefaultLogConfig()
	return &Config{
		Layout: LayoutConfig{
			ExpandedWidth:    30,
			CompactWidth:     8,
			MobileBreakpoint: 80,
			StartCompact:     false,
			RememberLayout:   true,
		},
		Log: LogSettings{
			Enabled:    defaults.LogsEnabled,
			Dir:        defaults.LogsDir,
			MaxSizeMB:  defaults.LogMaxSize,
			MaxFiles:   defaults.LogMaxFiles,
			MaxAgeDays: defaults.LogMaxAge,
			Compress:   defaults.LogCompress,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("layout.expanded_width", d.Layout.ExpandedWidth)
	v.SetDefault("layout.compact_width", d.Layout.CompactWidth)
	v.SetDefault("layout.mobile_breakpoint", d.Layout.MobileBreakpoint)
	v.SetDefault("layout.start_compact", d.Layout.StartCompact)
	v.SetDefault("layout.remember_layout", d.Layout.RememberLayout)
	v.SetDefault("log.enabled", d.Log.Enabled)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_files", d.Log.MaxFiles)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)
}

// Load reads configuration from a TOML file and the environment. Env var
// overrides use the prefix KEYCLAIM_ (e.g. KEYCLAIM_LAYOUT_COMPACT_WIDTH).
// An empty path searches the config directory; a missing file there is not
// an error, but an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks geometry and key mappings.
func (c *Config) Validate() error {
	if c.Layout.CompactWidth <= 0 || c.Layout.ExpandedWidth <= 0 {
		return fmt.Errorf("invalid layout: sidebar widths must be positive (expanded=%d, compact=%d)",
			c.Layout.ExpandedWidth, c.Layout.CompactWidth)
	}
	if c.Layout.CompactWidth >= c.Layout.ExpandedWidth {
		return fmt.Errorf("invalid layout: compact width %d must be smaller than expanded width %d",
			c.Layout.CompactWidth, c.Layout.ExpandedWidth)
	}
	if c.Layout.MobileBreakpoint < 0 {
		return fmt.Errorf("invalid layout: mobile breakpoint %d is negative", c.Layout.MobileBreakpoint)
	}
	for i, m := range c.KeyMap {
		if m.Raw == "" {
			return fmt.Errorf("invalid keymap entry %d: raw key is empty", i)
		}
		if _, ok := keys.Parse(m.Key); !ok {
			return fmt.Errorf("invalid keymap entry %d: unknown logical key %q", i, m.Key)
		}
	}
	return nil
}

// RawKeyMap returns the configured extra raw → logical mappings.
func (c *Config) RawKeyMap() map[string]keys.LogicalKey {
	out := make(map[string]keys.LogicalKey, len(c.KeyMap))
	for _, m := range c.KeyMap {
		if k, ok := keys.Parse(m.Key); ok {
			out[m.Raw] = k
		}
	}
	return out
}
