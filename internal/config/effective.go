package config

import (
	"fmt"
	"sort"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw over DefaultConfig. An empty string
// under keybindings unbinds a default key.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	cfg.BorderWidth = derefInt(raw.BorderWidth, cfg.BorderWidth)
	cfg.BorderWidthSingle = derefInt(raw.BorderWidthSingle, cfg.BorderWidthSingle)
	cfg.BorderFocus = derefString(raw.BorderFocus, cfg.BorderFocus)
	cfg.BorderNormal = derefString(raw.BorderNormal, cfg.BorderNormal)
	cfg.BorderFocusFixed = derefString(raw.BorderFocusFixed, cfg.BorderFocusFixed)
	cfg.BorderNormalFixed = derefString(raw.BorderNormalFixed, cfg.BorderNormalFixed)
	cfg.Margin = derefInt(raw.Margin, cfg.Margin)
	cfg.MarginSingle = derefInt(raw.MarginSingle, cfg.MarginSingle)
	cfg.MinSize = derefInt(raw.MinSize, cfg.MinSize)
	cfg.MaxRestoreMementos = derefInt(raw.MaxRestoreMementos, cfg.MaxRestoreMementos)
	cfg.LogLevel = derefString(raw.LogLevel, cfg.LogLevel)
	cfg.ReconcileInterval = derefInt(raw.ReconcileInterval, cfg.ReconcileInterval)
	cfg.PaletteBackend = derefString(raw.PaletteBackend, cfg.PaletteBackend)
	cfg.MoveModeKey = derefString(raw.MoveModeKey, cfg.MoveModeKey)
	cfg.MoveModeTimeout = derefInt(raw.MoveModeTimeout, cfg.MoveModeTimeout)

	if raw.ScreenPadding != nil {
		cfg.ScreenPadding = Margins{
			Top:    derefInt(raw.ScreenPadding.Top, cfg.ScreenPadding.Top),
			Bottom: derefInt(raw.ScreenPadding.Bottom, cfg.ScreenPadding.Bottom),
			Left:   derefInt(raw.ScreenPadding.Left, cfg.ScreenPadding.Left),
			Right:  derefInt(raw.ScreenPadding.Right, cfg.ScreenPadding.Right),
		}
	}

	if raw.TileRegion != nil {
		region := cfg.TileRegion
		if raw.TileRegion.Type != nil {
			region.Type = *raw.TileRegion.Type
		}
		region.XPercent = derefInt(raw.TileRegion.XPercent, region.XPercent)
		region.YPercent = derefInt(raw.TileRegion.YPercent, region.YPercent)
		region.WidthPercent = derefInt(raw.TileRegion.WidthPercent, region.WidthPercent)
		region.HeightPercent = derefInt(raw.TileRegion.HeightPercent, region.HeightPercent)
		cfg.TileRegion = region
	}

	if raw.IgnoreClasses != nil {
		cfg.IgnoreClasses = append([]string(nil), raw.IgnoreClasses...)
	}

	for _, key := range sortedKeys(raw.Keybindings) {
		cmd := raw.Keybindings[key]
		if cmd == "" {
			delete(cfg.Keybindings, key)
			continue
		}
		cfg.Keybindings[key] = cmd
	}

	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefString(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
