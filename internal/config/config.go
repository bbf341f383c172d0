// Package config loads the YAML settings of the uc8159 example programs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"periph.io/x/devices/v3/uc8159/image7color"
)

// Pins names the GPIO lines wired to the panel, as known to gpioreg.
type Pins struct {
	DC    string `yaml:"dc"`
	Reset string `yaml:"reset"`
	Busy  string `yaml:"busy"`
}

// Config is the program configuration.
type Config struct {
	// SPI is the port name passed to spireg.Open; empty selects the first port.
	SPI  string `yaml:"spi"`
	Pins Pins   `yaml:"pins"`

	// BorderColor is shown on the panel edge during refresh.
	BorderColor image7color.Color `yaml:"border_color"`

	// Saturation picks the palette used for color matching, 0 for textbook
	// colors and 1 for colors measured on the panel.
	Saturation float32 `yaml:"saturation"`

	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
}

// Default returns the wiring of the Pimoroni Inky Impression HAT.
func Default() *Config {
	return &Config{
		SPI: "SPI0.0",
		Pins: Pins{
			DC:    "GPIO22",
			Reset: "GPIO27",
			Busy:  "GPIO17",
		},
		BorderColor: image7color.White,
		Saturation:  1.0,
		LogLevel:    "info",
	}
}

// Normalize fills empty fields with defaults.
func (c *Config) Normalize() {
	d := Default()
	if c.Pins.DC == "" {
		c.Pins.DC = d.Pins.DC
	}
	if c.Pins.Reset == "" {
		c.Pins.Reset = d.Pins.Reset
	}
	if c.Pins.Busy == "" {
		c.Pins.Busy = d.Pins.Busy
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate reports settings the driver cannot use.
func (c *Config) Validate() error {
	if c.Saturation < 0 || c.Saturation > 1 {
		return fmt.Errorf("config: saturation %v outside [0, 1]", c.Saturation)
	}
	if !c.BorderColor.Valid() {
		return fmt.Errorf("config: invalid border color %d", uint8(c.BorderColor))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Level returns the parsed log level, Info when unparsable.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// Load reads the YAML file at path over the defaults.
//
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, atomically via a temp file + rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: config is nil")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".uc8159-config-*.tmp")
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
