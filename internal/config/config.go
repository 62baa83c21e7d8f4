// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the configuration of the example hosts from
// TOML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hudson/ruler/ruler"
)

// Config is the configuration of a host.
type Config struct {
	Ruler  RulerConfig  `toml:"ruler"`
	Window WindowConfig `toml:"window"`
	Log    LogConfig    `toml:"log"`
}

// RulerConfig mirrors ruler.Config. Lengths are in the unit of the
// host: dp for Gio and ebiten, terminal cells for the terminal host.
// Colors are "#rrggbb" or "#rrggbbaa".
type RulerConfig struct {
	Min              float32 `toml:"min"`
	Max              float32 `toml:"max"`
	Initial          float32 `toml:"initial"`
	Spacing          float32 `toml:"spacing"`
	LineWidth        float32 `toml:"line_width"`
	MinorHeight      float32 `toml:"minor_height"`
	MidHeight        float32 `toml:"mid_height"`
	MajorHeight      float32 `toml:"major_height"`
	IndicatorLength  float32 `toml:"indicator_length"`
	LabelGap         float32 `toml:"label_gap"`
	TextSize         float32 `toml:"text_size"`
	MinFlingVelocity float32 `toml:"min_fling_velocity"`
	TickColor        string  `toml:"tick_color"`
	LabelColor       string  `toml:"label_color"`
	IndicatorColor   string  `toml:"indicator_color"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type LogConfig struct {
	// Level is a logrus level name.
	Level string `toml:"level"`
	// File receives the log instead of standard error if set.
	File string `toml:"file"`
}

var (
	ErrMissingTickHeights = errors.New("config: tick heights must be positive")
	ErrInvalidColor       = errors.New("config: invalid color")
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Ruler: RulerConfig{
			Min:              0,
			Max:              200,
			Initial:          100,
			Spacing:          15,
			LineWidth:        2,
			MinorHeight:      20,
			MidHeight:        30,
			MajorHeight:      40,
			IndicatorLength:  80,
			LabelGap:         24,
			TextSize:         16,
			MinFlingVelocity: 50,
			TickColor:        "#888888",
			LabelColor:       "#000000",
			IndicatorColor:   "#ff0000",
		},
		Window: WindowConfig{
			Title:  "Ruler",
			Width:  400,
			Height: 300,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Path returns the default location of the configuration file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(dir, "ruler", "config.toml"), nil
}

// Load reads the configuration at path. A missing file results in the
// default configuration.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a TOML configuration from r. Missing keys keep their
// default values.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory if
// needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return f.Close()
}

// Validate reports configurations that would result in a degenerate
// ruler.
func (c Config) Validate() error {
	r := c.Ruler
	if _, err := r.Ruler(); err != nil {
		return err
	}
	if !(r.MinorHeight > 0 && r.MidHeight > 0 && r.MajorHeight > 0) {
		return ErrMissingTickHeights
	}
	return nil
}

// Ruler converts the configuration to a ruler.Config.
func (r RulerConfig) Ruler() (ruler.Config, error) {
	cfg := ruler.DefaultConfig()
	cfg.Min = r.Min
	cfg.Max = r.Max
	cfg.Initial = r.Initial
	cfg.Spacing = r.Spacing
	cfg.LineWidth = r.LineWidth
	cfg.MinorHeight = r.MinorHeight
	cfg.MidHeight = r.MidHeight
	cfg.MajorHeight = r.MajorHeight
	cfg.IndicatorLength = r.IndicatorLength
	cfg.LabelGap = r.LabelGap
	cfg.TextSize = r.TextSize
	cfg.MinFlingVelocity = r.MinFlingVelocity
	if err := cfg.Validate(); err != nil {
		return ruler.Config{}, fmt.Errorf("config: %w", err)
	}
	for _, c := range []struct {
		name string
		src  string
		dst  *color.NRGBA
	}{
		{"tick_color", r.TickColor, &cfg.TickColor},
		{"label_color", r.LabelColor, &cfg.LabelColor},
		{"indicator_color", r.IndicatorColor, &cfg.IndicatorColor},
	} {
		col, err := ParseColor(c.src)
		if err != nil {
			return ruler.Config{}, fmt.Errorf("%s: %w", c.name, err)
		}
		*c.dst = col
	}
	return cfg, nil
}

// ParseColor parses "#rrggbb" and "#rrggbbaa" colors.
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
