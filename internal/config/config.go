package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/PixPMusic/nanokontrol-bridge/internal/logging"
	"github.com/PixPMusic/nanokontrol-bridge/internal/surface"
)

// DeviceConfig selects the MIDI ports of the controller
type DeviceConfig struct {
	ID      string `yaml:"id"`      // Unique identifier
	Name    string `yaml:"name"`    // User-friendly name
	InPort  string `yaml:"inPort"`  // MIDI input port name (exact or substring)
	OutPort string `yaml:"outPort"` // MIDI output port name (exact or substring)
}

// NewDeviceConfig creates a device config for a nanoKONTROL2 with a generated ID
func NewDeviceConfig() DeviceConfig {
	return DeviceConfig{
		ID:      uuid.New().String(),
		Name:    surface.NanoKontrol2.Name,
		InPort:  "nanoKONTROL2",
		OutPort: "nanoKONTROL2",
	}
}

// HostConfig holds the OSC endpoints of the DAW
type HostConfig struct {
	SendAddr   string `yaml:"sendAddr"`   // where host commands go
	ListenAddr string `yaml:"listenAddr"` // where host notifications arrive
}

// SurfaceConfig holds the controller behaviour knobs
type SurfaceConfig struct {
	FlashPeriodMs int                   `yaml:"flashPeriodMs"`
	PanDivisor    int                   `yaml:"panDivisor"`
	SoloIsolation surface.SoloIsolation `yaml:"soloIsolation"`
	EagerStopLED  bool                  `yaml:"eagerStopLED"`
}

// LogConfig holds the log level and the components with debug output
type LogConfig struct {
	Level string   `yaml:"level"`
	Debug []string `yaml:"debug,omitempty"`
}

// Config holds application configuration
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Host    HostConfig    `yaml:"host"`
	Surface SurfaceConfig `yaml:"surface"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	policy := surface.DefaultPolicy()
	return &Config{
		Device: NewDeviceConfig(),
		Host: HostConfig{
			SendAddr:   "127.0.0.1:9000",
			ListenAddr: "127.0.0.1:9001",
		},
		Surface: SurfaceConfig{
			FlashPeriodMs: int(surface.DefaultFlashPeriod / time.Millisecond),
			PanDivisor:    policy.PanDivisor,
			SoloIsolation: policy.SoloIsolation,
			EagerStopLED:  policy.EagerStopLED,
		},
		Log: LogConfig{Level: "info"},
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "nanokontrol-bridge"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the config at path. Fields missing from the file keep
// their defaults; a missing file yields Default().
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Device.ID == "" {
		cfg.Device.ID = uuid.New().String()
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks everything main needs before opening ports
func (c *Config) Validate() error {
	if c.Device.InPort == "" || c.Device.OutPort == "" {
		return errors.New("device inPort and outPort must be set")
	}
	if _, _, err := net.SplitHostPort(c.Host.SendAddr); err != nil {
		return fmt.Errorf("invalid host sendAddr %q: %w", c.Host.SendAddr, err)
	}
	if _, _, err := net.SplitHostPort(c.Host.ListenAddr); err != nil {
		return fmt.Errorf("invalid host listenAddr %q: %w", c.Host.ListenAddr, err)
	}
	if c.Surface.FlashPeriodMs <= 0 {
		return fmt.Errorf("flashPeriodMs must be positive, got %d", c.Surface.FlashPeriodMs)
	}
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	if _, err := c.DebugMask(); err != nil {
		return err
	}
	return nil
}

// Policy returns the surface policy
func (c *Config) Policy() surface.Policy {
	return surface.Policy{
		PanDivisor:    c.Surface.PanDivisor,
		SoloIsolation: c.Surface.SoloIsolation,
		EagerStopLED:  c.Surface.EagerStopLED,
	}
}

// FlashPeriod returns the solo LED blink period
func (c *Config) FlashPeriod() time.Duration {
	return time.Duration(c.Surface.FlashPeriodMs) * time.Millisecond
}

// DebugMask parses log.debug
func (c *Config) DebugMask() (logging.Mask, error) {
	return logging.ParseMask(c.Log.Debug)
}

// SurfaceOptions converts the config to surface options
func (c *Config) SurfaceOptions() ([]surface.Option, error) {
	mask, err := c.DebugMask()
	if err != nil {
		return nil, err
	}
	return []surface.Option{
		surface.WithPolicy(c.Policy()),
		surface.WithFlashPeriod(c.FlashPeriod()),
		surface.WithDebugMask(mask),
	}, nil
}
