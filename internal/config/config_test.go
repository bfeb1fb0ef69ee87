package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Keybindings["Mod4-h"] != "focus left" {
		t.Fatalf("expected default focus binding, got %q", cfg.Keybindings["Mod4-h"])
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.MinSize != DefaultMinSize {
		t.Fatalf("expected min_size %d, got %d", DefaultMinSize, res.Config.MinSize)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.MaxRestoreMementos != DefaultMaxRestoreMementos {
		t.Fatalf("expected max_restore_mementos %d, got %d", DefaultMaxRestoreMementos, res.Config.MaxRestoreMementos)
	}
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	data := strings.Join([]string{
		"border_width: 3",
		"border_focus: \"#ff0000\"",
		"margin_single: 12",
		"screen_padding:",
		"  top: 30",
		"tile_region:",
		"  type: custom",
		"  x_percent: 10",
		"  width_percent: 80",
		"  height_percent: 100",
		"ignore_classes: [Gimp, Steam]",
		"keybindings:",
		"  Mod4-h: \"\"",
		"  Mod4-x: close",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.BorderWidth != 3 || cfg.MarginSingle != 12 {
		t.Fatalf("unexpected border/margin: %d/%d", cfg.BorderWidth, cfg.MarginSingle)
	}
	if cfg.ScreenPadding != (Margins{Top: 30}) {
		t.Fatalf("unexpected padding %+v", cfg.ScreenPadding)
	}
	if cfg.TileRegion.Type != RegionCustom || cfg.TileRegion.XPercent != 10 {
		t.Fatalf("unexpected tile region %+v", cfg.TileRegion)
	}
	if !cfg.Ignored("gimp") || cfg.Ignored("kitty") {
		t.Fatalf("ignore_classes not applied: %v", cfg.IgnoreClasses)
	}
	if _, ok := cfg.Keybindings["Mod4-h"]; ok {
		t.Fatalf("expected Mod4-h to be unbound")
	}
	if cfg.Keybindings["Mod4-x"] != "close" {
		t.Fatalf("expected Mod4-x binding, got %q", cfg.Keybindings["Mod4-x"])
	}
	if cfg.Keybindings["Mod4-l"] != "focus right" {
		t.Fatalf("expected defaults to survive, got %q", cfg.Keybindings["Mod4-l"])
	}

	colors, err := cfg.BorderColors()
	if err != nil {
		t.Fatalf("colors: %v", err)
	}
	if colors.Focus != 0xff0000 {
		t.Fatalf("focus colour = %#x", colors.Focus)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "margin: 2\nmin_size: 0\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "min_size" {
		t.Fatalf("expected path min_size, got %q", verr.Path)
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, configD, "10-base.yaml", "margin: 5\nborder_width: 1\n")
	writeConfig(t, configD, "20-override.yaml", "margin: 6\n")

	path := writeConfig(t, dir, "config.yaml", "include:\n  - config.d\nmargin: 7\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Margin != 7 {
		t.Fatalf("expected margin 7, got %d", res.Config.Margin)
	}
	if res.Config.BorderWidth != 1 {
		t.Fatalf("expected included border_width 1, got %d", res.Config.BorderWidth)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestExplain_Source(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "screen_padding:\n  left: 8\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "screen_padding.left")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 8 || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("unexpected explain result %v %#v", val, src)
	}

	val, src, err = Explain(res, "min_size")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != DefaultMinSize || src.Kind != SourceDefault {
		t.Fatalf("unexpected default explain %v %#v", val, src)
	}

	if _, _, err := Explain(res, "nope"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"negative border", func(c *Config) { c.BorderWidth = -1 }, "border_width"},
		{"bad colour", func(c *Config) { c.BorderNormalFixed = "blue" }, "border_normal_fixed"},
		{"zero mementos", func(c *Config) { c.MaxRestoreMementos = 0 }, "max_restore_mementos"},
		{"bad region", func(c *Config) { c.TileRegion.Type = "diagonal" }, "tile_region"},
		{"custom overflow", func(c *Config) {
			c.TileRegion = TileRegion{Type: RegionCustom, XPercent: 50, WidthPercent: 60, HeightPercent: 100}
		}, "tile_region"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"move mode timeout", func(c *Config) { c.MoveModeTimeout = 0 }, "move_mode_timeout"},
		{"move mode clash", func(c *Config) { c.Keybindings["Mod4-Return"] = "retile" }, "keybindings.Mod4-Return"},
		{"palette backend", func(c *Config) { c.PaletteBackend = "zenity" }, "palette_backend"},
		{"empty ignore", func(c *Config) { c.IgnoreClasses = []string{" "} }, "ignore_classes"},
		{"empty command", func(c *Config) { c.Keybindings["Mod4-z"] = " " }, "keybindings.Mod4-z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestParseColorAndPick(t *testing.T) {
	v, err := ParseColor("#0A0b0C")
	if err != nil || v != 0x0a0b0c {
		t.Fatalf("ParseColor = %#x, %v", v, err)
	}
	if _, err := ParseColor("#fff"); err == nil {
		t.Fatalf("expected short colour to fail")
	}

	colors := BorderColors{Focus: 1, Normal: 2, FocusFixed: 3, NormalFixed: 4}
	if colors.Pick(true, false) != 1 || colors.Pick(false, false) != 2 || colors.Pick(true, true) != 3 || colors.Pick(false, true) != 4 {
		t.Fatalf("Pick returned the wrong colour")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Margin = 9

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Margin != 9 {
		t.Fatalf("expected margin 9, got %d", res.Config.Margin)
	}
}
