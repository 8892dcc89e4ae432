package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/nanokontrol-bridge/internal/logging"
	"github.com/PixPMusic/nanokontrol-bridge/internal/surface"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	_, err = uuid.Parse(cfg.Device.ID)
	require.NoError(t, err)
	assert.Equal(t, 63, cfg.Surface.PanDivisor)
	assert.Equal(t, surface.SoloIsolationTracked, cfg.Surface.SoloIsolation)
	assert.Equal(t, surface.DefaultFlashPeriod, cfg.FlashPeriod())
	assert.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Device.InPort = "nanoKONTROL2 SLIDER/KNOB"
	cfg.Surface.PanDivisor = 64
	cfg.Surface.EagerStopLED = true
	cfg.Log.Debug = []string{"midi", "bank"}

	require.NoError(t, cfg.SaveFile(path))
	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFileMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("surface:\n  soloIsolation: folded\nlog:\n  debug: [transport]\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, surface.SoloIsolationFolded, cfg.Surface.SoloIsolation)
	assert.Equal(t, 63, cfg.Surface.PanDivisor)
	assert.Equal(t, "127.0.0.1:9000", cfg.Host.SendAddr)
	assert.NotEmpty(t, cfg.Device.ID)

	mask, err := cfg.DebugMask()
	require.NoError(t, err)
	assert.Equal(t, logging.Transport, mask)
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("surface: [unterminated"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"pan divisor", func(c *Config) { c.Surface.PanDivisor = 100 }},
		{"isolation", func(c *Config) { c.Surface.SoloIsolation = "blink" }},
		{"flash period", func(c *Config) { c.Surface.FlashPeriodMs = 0 }},
		{"in port", func(c *Config) { c.Device.InPort = "" }},
		{"out port", func(c *Config) { c.Device.OutPort = "" }},
		{"send addr", func(c *Config) { c.Host.SendAddr = "nowhere" }},
		{"listen addr", func(c *Config) { c.Host.ListenAddr = "" }},
		{"debug mask", func(c *Config) { c.Log.Debug = []string{"lights"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSurfaceOptions(t *testing.T) {
	cfg := Default()
	cfg.Surface.FlashPeriodMs = 250
	cfg.Surface.PanDivisor = 64

	opts, err := cfg.SurfaceOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
	assert.Equal(t, 250*time.Millisecond, cfg.FlashPeriod())
	assert.Equal(t, 64, cfg.Policy().PanDivisor)

	cfg.Log.Debug = []string{"bogus"}
	_, err = cfg.SurfaceOptions()
	assert.Error(t, err)
}

func TestSaveLoadUserConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	cfg := Default()
	cfg.Surface.EagerStopLED = true
	require.NoError(t, cfg.Save())

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, "config.yaml", filepath.Base(path))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
