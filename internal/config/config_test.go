package config

import (
	"log/slog"
	"slices"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.SnapDistance != 10 || cfg.SnapGridSize != 20 {
		t.Errorf("defaults = %+v", cfg)
	}
	if got := cfg.Origins(); !slices.Equal(got, []string{"http://localhost:5173", "http://localhost:3000"}) {
		t.Errorf("Origins = %v", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SNAP_DISTANCE", "6")
	t.Setenv("SNAP_GRID_SIZE", "8")
	t.Setenv("CANVAS_BACKGROUND", "#000000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.EditorDefaults()
	if cfg.Port != 9090 || opts.Snap.Distance != 6 || opts.Snap.GridSize != 8 {
		t.Errorf("config = %+v, snap = %+v", cfg, opts.Snap)
	}
	if opts.Canvas.BackgroundColor != "#000000" {
		t.Errorf("background = %q", opts.Canvas.BackgroundColor)
	}
	if !opts.Snap.Enabled || opts.Snap.Grid {
		t.Errorf("snap flags = %+v", opts.Snap)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v", cfg.SlogLevel())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SNAP_DISTANCE", "-1")
	if _, err := Load(); err == nil {
		t.Error("negative snap distance accepted")
	}
	t.Setenv("SNAP_DISTANCE", "ten")
	if _, err := Load(); err == nil {
		t.Error("non-numeric snap distance accepted")
	}
}
