package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	border_width
//	border_focus
//	margin
//	min_size
//	max_restore_mementos
//	screen_padding.top
//	tile_region.type
//	ignore_classes
//	log_level
//	reconcile_interval
//	keybindings.<key>
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.SplitN(path, ".", 2)
	scalars := map[string]any{
		"border_width":         cfg.BorderWidth,
		"border_width_single":  cfg.BorderWidthSingle,
		"border_focus":         cfg.BorderFocus,
		"border_normal":        cfg.BorderNormal,
		"border_focus_fixed":   cfg.BorderFocusFixed,
		"border_normal_fixed":  cfg.BorderNormalFixed,
		"margin":               cfg.Margin,
		"margin_single":        cfg.MarginSingle,
		"min_size":             cfg.MinSize,
		"max_restore_mementos": cfg.MaxRestoreMementos,
		"ignore_classes":       cfg.IgnoreClasses,
		"log_level":            cfg.LogLevel,
		"reconcile_interval":   cfg.ReconcileInterval,
		"palette_backend":      cfg.PaletteBackend,
		"move_mode_key":        cfg.MoveModeKey,
		"move_mode_timeout":    cfg.MoveModeTimeout,
	}
	if v, ok := scalars[parts[0]]; ok {
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return v, nil
	}

	switch parts[0] {
	case "screen_padding":
		if len(parts) == 1 {
			return cfg.ScreenPadding, nil
		}
		switch parts[1] {
		case "top":
			return cfg.ScreenPadding.Top, nil
		case "bottom":
			return cfg.ScreenPadding.Bottom, nil
		case "left":
			return cfg.ScreenPadding.Left, nil
		case "right":
			return cfg.ScreenPadding.Right, nil
		}
	case "tile_region":
		if len(parts) == 1 {
			return cfg.TileRegion, nil
		}
		switch parts[1] {
		case "type":
			return cfg.TileRegion.Type, nil
		case "x_percent":
			return cfg.TileRegion.XPercent, nil
		case "y_percent":
			return cfg.TileRegion.YPercent, nil
		case "width_percent":
			return cfg.TileRegion.WidthPercent, nil
		case "height_percent":
			return cfg.TileRegion.HeightPercent, nil
		}
	case "keybindings":
		if len(parts) == 1 {
			return cfg.Keybindings, nil
		}
		cmd, ok := cfg.Keybindings[parts[1]]
		if !ok {
			return nil, fmt.Errorf("unknown keybinding %q", parts[1])
		}
		return cmd, nil
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}
