package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config describes the panel wiring and how the demo renders text.
type Config struct {
	// I2CBus is the bus name passed to i2creg.Open. Empty selects the first bus.
	I2CBus string `yaml:"i2c_bus"`

	// Address is the 7-bit I²C address of the controller.
	Address uint16 `yaml:"address"`

	// ResetPin is the GPIO name of the RST line, e.g. "GPIO27".
	ResetPin string `yaml:"reset_pin"`

	// SpeedKHz sets the bus clock. Zero keeps the bus default.
	SpeedKHz int `yaml:"speed_khz"`

	// Font is the path of a TTF file. Empty uses the embedded Go Mono.
	Font string `yaml:"font"`

	// Scale is the font em size in pixels.
	Scale float64 `yaml:"scale"`

	// Flip mirrors placement for a panel mounted upside down.
	Flip bool `yaml:"flip"`

	// DropClipped skips writes that do not fit on the panel.
	DropClipped bool `yaml:"drop_clipped"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the wiring of a Waveshare 1.5" module on a Raspberry Pi.
func DefaultConfig() *Config {
	return &Config{
		I2CBus:   "",
		Address:  0x3D,
		ResetPin: "GPIO27",
		Scale:    16,
		LogLevel: "info",
	}
}

// Normalize fills in missing/zero values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Address == 0 {
		c.Address = def.Address
	}
	if c.ResetPin == "" {
		c.ResetPin = def.ResetPin
	}
	if c.Scale <= 0 {
		c.Scale = def.Scale
	}
	if c.SpeedKHz < 0 {
		c.SpeedKHz = 0
	}
	switch c.LogLevel {
	case "debug", "info", "error":
	default:
		c.LogLevel = def.LogLevel
	}
}

// Validate rejects values the driver cannot use.
func (c *Config) Validate() error {
	if c.Address > 0x3FF {
		return fmt.Errorf("config: address 0x%X does not fit 10 bits", c.Address)
	}
	return nil
}

// Load reads the YAML file at path. A missing file yields DefaultConfig.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path atomically via a temp file + rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ssd1327-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
