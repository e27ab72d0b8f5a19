package config

import (
	"os"
	"path/filepath"
	"testing"

	"keyclaim/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("KEYCLAIM_HOME", t.TempDir())
	t.Setenv("KEYCLAIM_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Layout, cfg.Layout)
	assert.True(t, cfg.Log.Enabled)
	assert.Empty(t, cfg.KeyMap)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[layout]
expanded_width = 40
compact_width = 6
mobile_breakpoint = 100
start_compact = true

[log]
enabled = false

[[keymap]]
raw = "ctrl+g"
key = "escape"

[[keymap]]
raw = "B"
key = "toggle-compact"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Layout.ExpandedWidth)
	assert.Equal(t, 6, cfg.Layout.CompactWidth)
	assert.Equal(t, 100, cfg.Layout.MobileBreakpoint)
	assert.True(t, cfg.Layout.StartCompact)
	assert.True(t, cfg.Layout.RememberLayout, "unset keys keep their defaults")
	assert.False(t, cfg.Log.Enabled)

	raw := cfg.RawKeyMap()
	assert.Equal(t, keys.Escape, raw["ctrl+g"])
	assert.Equal(t, keys.ToggleCompact, raw["B"], "raw keys keep their case")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("KEYCLAIM_HOME", t.TempDir())
	t.Setenv("KEYCLAIM_LAYOUT_COMPACT_WIDTH", "4")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Layout.CompactWidth)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "zero compact width", mutate: func(c *Config) { c.Layout.CompactWidth = 0 }, wantErr: true},
		{name: "compact wider than expanded", mutate: func(c *Config) { c.Layout.CompactWidth = 50 }, wantErr: true},
		{name: "negative breakpoint", mutate: func(c *Config) { c.Layout.MobileBreakpoint = -1 }, wantErr: true},
		{name: "unknown logical key", mutate: func(c *Config) {
			c.KeyMap = []KeyMapping{{Raw: "x", Key: "launch-rockets"}}
		}, wantErr: true},
		{name: "empty raw key", mutate: func(c *Config) {
			c.KeyMap = []KeyMapping{{Raw: "", Key: "escape"}}
		}, wantErr: true},
		{name: "valid mapping", mutate: func(c *Config) {
			c.KeyMap = []KeyMapping{{Raw: "ctrl+[", Key: "escape"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogSettingsConversion(t *testing.T) {
	s := LogSettings{Enabled: true, Dir: "/tmp/x", MaxSizeMB: 3, MaxFiles: 2, MaxAgeDays: 1, Compress: true}
	lc := s.LogConfig()
	assert.True(t, lc.LogsEnabled)
	assert.Equal(t, "/tmp/x", lc.LogsDir)
	assert.Equal(t, 3, lc.LogMaxSize)
	assert.Equal(t, 2, lc.LogMaxFiles)
	assert.Equal(t, 1, lc.LogMaxAge)
	assert.True(t, lc.LogCompress)
}
