// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
)

// Config is the file configuration of an engine.
//
// Example file:
//
//	backend = "workspace"
//	log_level = "debug"
//
//	[render]
//	width = 640
//	height = 480
//	anti_aliasing = 4
//	hfov = 1.5708
type Config struct {
	// Backend is the registered backend name. Empty selects the default.
	Backend string `toml:"backend"`

	// LogLevel is one of debug, info, warn, error or off.
	LogLevel string `toml:"log_level"`

	Render RenderConfig `toml:"render"`
}

// RenderConfig holds the defaults of new cameras and render targets.
type RenderConfig struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	AntiAliasing int     `toml:"anti_aliasing"`
	HFOV         float32 `toml:"hfov"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel: "off",
		Render: RenderConfig{
			Width:        320,
			Height:       240,
			AntiAliasing: DefaultAntiAliasing,
			HFOV:         DefaultHFOV,
		},
	}
}

// ParseConfig decodes TOML data on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rendering: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rendering: read config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidArgument, r.Width, r.Height)
	}
	if r.AntiAliasing < 0 {
		return fmt.Errorf("%w: anti_aliasing %d", ErrInvalidArgument, r.AntiAliasing)
	}
	if r.HFOV <= 0 || r.HFOV >= math32.Pi {
		return fmt.Errorf("%w: hfov %g outside (0, pi)", ErrInvalidArgument, r.HFOV)
	}
	if _, _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level of LogLevel. enabled is false for "off".
func (c Config) Level() (level slog.Level, enabled bool, err error) {
	name := strings.ToLower(strings.TrimSpace(c.LogLevel))
	if name == "" || name == "off" {
		return 0, false, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, false, fmt.Errorf("%w: log_level %q", ErrInvalidArgument, c.LogLevel)
	}
	return level, true, nil
}

// NewLogger returns a text logger writing to stderr at the configured
// level, or nil when logging is off. Pass the result to SetLogger.
func (c Config) NewLogger() (*slog.Logger, error) {
	level, enabled, err := c.Level()
	if err != nil || !enabled {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
