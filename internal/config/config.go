package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/philipparndt/gobbox/pkg/report"
	"github.com/philipparndt/gobbox/pkg/units"
)

// DefaultFile is the settings file used when --config is not given
const DefaultFile = "~/.config/gobbox/config.toml"

// Config holds user settings. Command line flags override them.
type Config struct {
	// Unit is the unit label used when a source declares none.
	Unit string `toml:"unit"`
	// Format is one of text, json or yaml.
	Format string `toml:"format"`
	// Precision is the number of decimals in text reports.
	Precision int `toml:"precision"`
	// Debounce delays re-measuring after a watched file changes.
	Debounce string `toml:"debounce"`
	// Cells is the tessellation resolution for kernel shapes.
	Cells int `toml:"cells"`
	// Aliases maps extra unit names to a known unit or a literal symbol.
	Aliases map[string]string `toml:"aliases"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Format:    string(report.FormatText),
		Precision: report.DefaultPrecision,
		Debounce:  "500ms",
		Cells:     200,
	}
}

// Load reads settings from path on top of Default. A missing file is only
// an error when the path was explicitly requested.
func Load(path string, explicit bool) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", path, err)
	}

	file, err := os.Open(expanded)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	return cfg, nil
}

// Decode parses TOML settings on top of Default and validates them
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Precision < 0 || c.Precision > 15 {
		return fmt.Errorf("precision must be between 0 and 15, got %d", c.Precision)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if c.Cells <= 0 {
		return fmt.Errorf("cells must be positive, got %d", c.Cells)
	}
	return nil
}

// DebounceDuration parses Debounce
func (c *Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce %q: %w", c.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("debounce must not be negative, got %s", d)
	}
	return d, nil
}

// UnitTable returns the default unit table extended with the configured aliases
func (c *Config) UnitTable() *units.Table {
	if len(c.Aliases) == 0 {
		return units.Default
	}
	return units.Default.WithAliases(c.Aliases)
}
