// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads arrowhead settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/arrowhead"
	"github.com/gogpu/arrowhead/render"
)

// Config is the full set of settings shared by the CLI commands.
type Config struct {
	Curve    Curve  `yaml:"curve"`
	Render   Render `yaml:"render"`
	Server   Server `yaml:"server"`
	Cache    Cache  `yaml:"cache"`
	LogLevel string `yaml:"log_level"`
}

// Curve selects the mesh to build.
type Curve struct {
	Variant  string  `yaml:"variant"`
	Depth    int     `yaml:"depth"`
	Scale    float32 `yaml:"scale"`
	Color    string  `yaml:"color"`
	Gradient bool    `yaml:"gradient"`
	Workers  int     `yaml:"workers"`
}

// Render configures PNG output.
type Render struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	LineWidth  float64 `yaml:"line_width"`
	Projection string  `yaml:"projection"`
	Background string  `yaml:"background"`
	Caption    bool    `yaml:"caption"`
}

// Server configures the HTTP mesh service.
type Server struct {
	Addr         string        `yaml:"addr"`
	MaxDepth     int           `yaml:"max_depth"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Cache configures the Redis mesh cache. An empty Addr disables Redis.
type Cache struct {
	Addr    string        `yaml:"addr"`
	DB      int           `yaml:"db"`
	TTL     time.Duration `yaml:"ttl"`
	Prefix  string        `yaml:"prefix"`
	Entries int           `yaml:"entries"`
}

var (
	// ErrInvalidRender is returned for unusable raster settings.
	ErrInvalidRender = errors.New("config: invalid render settings")

	// ErrInvalidServer is returned for unusable server settings.
	ErrInvalidServer = errors.New("config: invalid server settings")

	// ErrInvalidLogLevel is returned when log_level is not a slog level.
	ErrInvalidLogLevel = errors.New("config: invalid log level")
)

// Default returns the built-in settings: a depth-12 white 3D curve.
func Default() Config {
	p := arrowhead.DefaultParams()
	return Config{
		Curve: Curve{
			Variant: p.Variant.String(),
			Depth:   p.Depth,
			Scale:   p.Scale,
			Color:   "#ffffff",
			Workers: 1,
		},
		Render: Render{
			Width:      1024,
			Height:     1024,
			LineWidth:  1,
			Projection: render.ProjectionFront.String(),
			Background: "#000000",
		},
		Server: Server{
			Addr:         ":8080",
			MaxDepth:     10,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Cache: Cache{
			TTL:     time.Hour,
			Prefix:  "arrowhead:mesh:",
			Entries: 64,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting, joined.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Params(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.RasterOptions(); err != nil {
		errs = append(errs, err)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: size %dx%d", ErrInvalidRender, c.Render.Width, c.Render.Height))
	}
	if c.Server.MaxDepth < 0 || c.Server.MaxDepth > arrowhead.MaxDepth {
		errs = append(errs, fmt.Errorf("%w: max_depth %d not in [0, %d]", ErrInvalidServer, c.Server.MaxDepth, arrowhead.MaxDepth))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Params converts the curve section into validated mesh parameters.
func (c Config) Params() (arrowhead.Params, error) {
	variant, err := arrowhead.ParseVariant(c.Curve.Variant)
	if err != nil {
		return arrowhead.Params{}, err
	}
	color, err := ParseColor(c.Curve.Color)
	if err != nil {
		return arrowhead.Params{}, err
	}
	p := arrowhead.Params{
		Variant:  variant,
		Depth:    c.Curve.Depth,
		Scale:    c.Curve.Scale,
		Color:    color,
		Gradient: c.Curve.Gradient,
	}
	if err := p.Validate(); err != nil {
		return arrowhead.Params{}, err
	}
	return p, nil
}

// BuildOptions returns the mesh builder options of the curve section.
func (c Config) BuildOptions() []arrowhead.BuildOption {
	return []arrowhead.BuildOption{arrowhead.WithWorkers(c.Curve.Workers)}
}

// RasterOptions converts the render section into raster options.
func (c Config) RasterOptions() ([]render.RasterOption, error) {
	proj, err := render.ParseProjection(c.Render.Projection)
	if err != nil {
		return nil, err
	}
	bg, err := ParseColor(c.Render.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if c.Render.LineWidth <= 0 {
		return nil, fmt.Errorf("%w: line_width %v", ErrInvalidRender, c.Render.LineWidth)
	}
	return []render.RasterOption{
		render.WithProjection(proj),
		render.WithLineWidth(c.Render.LineWidth),
		render.WithBackground(bg),
		render.WithCaption(c.Render.Caption),
	}, nil
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return l, nil
}

// ParseColor accepts "#rgb" or "#rrggbb", with or without the leading '#'.
func ParseColor(s string) (arrowhead.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if (len(hex) != 3 && len(hex) != 6) || strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
		return arrowhead.Color{}, fmt.Errorf("%w: %q", arrowhead.ErrInvalidColor, s)
	}
	c := gg.Hex(hex)
	return arrowhead.RGB(float32(c.R), float32(c.G), float32(c.B)), nil
}
