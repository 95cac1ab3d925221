package config

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/layout"
)

// Config represents the application configuration
type Config struct {
	LogLevel string `toml:"log_level"`
	FontPath string `toml:"font_path"`

	Card CardConfig `toml:"card"`
	Page PageConfig `toml:"page"`
}

// CardConfig describes the card footprint and how it is drawn
type CardConfig struct {
	WidthIn             float64 `toml:"width_in"`
	HeightIn            float64 `toml:"height_in"`
	UnitsPerInch        float64 `toml:"units_per_inch"`
	CharSpacing         float64 `toml:"char_spacing"`
	CornerFraction      float64 `toml:"corner_fraction"`
	Margin              float64 `toml:"margin"`
	TickLength          int     `toml:"tick_length"`
	Background          string  `toml:"background"`
	Ink                 string  `toml:"ink"`
	MinLegiblePointSize int     `toml:"min_legible_point_size"`
}

// PageConfig describes the sheet cards are printed on
type PageConfig struct {
	Paper     string  `toml:"paper"`
	Landscape bool    `toml:"landscape"`
	MarginIn  float64 `toml:"margin_in"`
	SpacingIn float64 `toml:"spacing_in"`
	Format    string  `toml:"format"`
	Output    string  `toml:"output"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Card: CardConfig{
			WidthIn:             3.5,
			HeightIn:            2,
			UnitsPerInch:        card.UnitsPerInch,
			CharSpacing:         1.5,
			CornerFraction:      0.1,
			TickLength:          10,
			Background:          "#ffffff",
			Ink:                 "#000000",
			MinLegiblePointSize: 6,
		},
		Page: PageConfig{
			Paper:     "letter",
			MarginIn:  0.25,
			SpacingIn: 0.25,
			Format:    "pdf",
			Output:    "punchcards.pdf",
		},
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "punchcard", "config.toml")
}

// LoadConfig loads the config file at path, creating it with defaults if it
// doesn't exist. An empty path means GetConfigFilePath.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefaultConfig(path)
	}

	// Start from defaults so keys missing from the file keep sane values.
	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	if err := Save(path, config); err != nil {
		return nil, err
	}
	slog.Debug("created default config", "path", path)
	return config, nil
}

// Save writes config to path as TOML
func Save(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// SetDefaultPaper sets the paper size in the config at path
func SetDefaultPaper(path, paper string) error {
	if path == "" {
		path = GetConfigFilePath()
	}

	config, err := LoadConfig(path)
	if err != nil {
		return err
	}

	config.Page.Paper = strings.ToLower(paper)
	return Save(path, config)
}

// Validate checks values that would make layout impossible
func (c *Config) Validate() error {
	switch {
	case c.Card.WidthIn <= 0 || c.Card.HeightIn <= 0:
		return fmt.Errorf("card size must be positive, got %vx%v in", c.Card.WidthIn, c.Card.HeightIn)
	case c.Card.UnitsPerInch <= 0:
		return fmt.Errorf("units_per_inch must be positive, got %v", c.Card.UnitsPerInch)
	case c.Card.CharSpacing < 1:
		return fmt.Errorf("char_spacing must be at least 1, got %v", c.Card.CharSpacing)
	case c.Card.CornerFraction < 0 || c.Card.CornerFraction >= 1:
		return fmt.Errorf("corner_fraction must be in [0, 1), got %v", c.Card.CornerFraction)
	case c.Card.Margin < 0:
		return fmt.Errorf("margin must not be negative, got %v", c.Card.Margin)
	case c.Page.MarginIn < 0 || c.Page.SpacingIn < 0:
		return fmt.Errorf("page margin and spacing must not be negative")
	}

	if _, _, err := c.Colors(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Geometry converts the card section to layout units
func (c *Config) Geometry() layout.Geometry {
	return layout.Geometry{
		Width:          int(c.Card.WidthIn * c.Card.UnitsPerInch),
		Height:         int(c.Card.HeightIn * c.Card.UnitsPerInch),
		CharSpacing:    c.Card.CharSpacing,
		CornerFraction: c.Card.CornerFraction,
		Margin:         c.Card.Margin,
		TickLength:     c.Card.TickLength,
	}
}

// Colors parses the background and ink colors
func (c *Config) Colors() (background, ink color.Color, err error) {
	bg, err := colorful.Hex(c.Card.Background)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid background color %q: %w", c.Card.Background, err)
	}
	fg, err := colorful.Hex(c.Card.Ink)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ink color %q: %w", c.Card.Ink, err)
	}
	return bg, fg, nil
}

// Units converts inches on the page to card units
func (c *Config) Units(inches float64) int {
	return int(inches * c.Card.UnitsPerInch)
}

// ParseLogLevel maps a config or flag value to a slog level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}
