package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/engine"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`

	SnapDistance       float64 `envconfig:"SNAP_DISTANCE" default:"10"`
	SnapAngleIncrement float64 `envconfig:"SNAP_ANGLE_INCREMENT" default:"15"`
	SnapGridSize       float64 `envconfig:"SNAP_GRID_SIZE" default:"20"`

	CanvasWidth      float64 `envconfig:"CANVAS_WIDTH" default:"1280"`
	CanvasHeight     float64 `envconfig:"CANVAS_HEIGHT" default:"720"`
	CanvasBackground string  `envconfig:"CANVAS_BACKGROUND" default:"#ffffff"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SnapDistance < 0 || cfg.SnapGridSize < 0 || cfg.SnapAngleIncrement < 0 {
		return nil, fmt.Errorf("snap tolerances must not be negative")
	}
	return &cfg, nil
}

// Origins splits ALLOWED_ORIGINS into host patterns.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// EditorDefaults returns the engine options for new editor sessions.
func (c *Config) EditorDefaults() engine.Options {
	opts := engine.DefaultOptions()
	opts.Snap.Distance = c.SnapDistance
	opts.Snap.AngleIncrement = c.SnapAngleIncrement
	opts.Snap.GridSize = c.SnapGridSize
	opts.Canvas = document.Settings{
		CanvasWidth:     c.CanvasWidth,
		CanvasHeight:    c.CanvasHeight,
		BackgroundColor: c.CanvasBackground,
	}
	return opts
}
