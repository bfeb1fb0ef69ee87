package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMargins struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

type RawTileRegion struct {
	Type          *RegionType `yaml:"type"`
	XPercent      *int        `yaml:"x_percent"`
	YPercent      *int        `yaml:"y_percent"`
	WidthPercent  *int        `yaml:"width_percent"`
	HeightPercent *int        `yaml:"height_percent"`
}

// RawConfig mirrors one YAML file. Nil fields were not set by that file.
type RawConfig struct {
	Include            IncludeList       `yaml:"include"`
	BorderWidth        *int              `yaml:"border_width"`
	BorderWidthSingle  *int              `yaml:"border_width_single"`
	BorderFocus        *string           `yaml:"border_focus"`
	BorderNormal       *string           `yaml:"border_normal"`
	BorderFocusFixed   *string           `yaml:"border_focus_fixed"`
	BorderNormalFixed  *string           `yaml:"border_normal_fixed"`
	Margin             *int              `yaml:"margin"`
	MarginSingle       *int              `yaml:"margin_single"`
	MinSize            *int              `yaml:"min_size"`
	MaxRestoreMementos *int              `yaml:"max_restore_mementos"`
	ScreenPadding      *RawMargins       `yaml:"screen_padding"`
	TileRegion         *RawTileRegion    `yaml:"tile_region"`
	IgnoreClasses      []string          `yaml:"ignore_classes"`
	LogLevel           *string           `yaml:"log_level"`
	ReconcileInterval  *int              `yaml:"reconcile_interval"`
	PaletteBackend     *string           `yaml:"palette_backend"`
	MoveModeKey        *string           `yaml:"move_mode_key"`
	MoveModeTimeout    *int              `yaml:"move_mode_timeout"`
	Keybindings        map[string]string `yaml:"keybindings"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	mergePtr(&out.BorderWidth, overlay.BorderWidth)
	mergePtr(&out.BorderWidthSingle, overlay.BorderWidthSingle)
	mergePtr(&out.BorderFocus, overlay.BorderFocus)
	mergePtr(&out.BorderNormal, overlay.BorderNormal)
	mergePtr(&out.BorderFocusFixed, overlay.BorderFocusFixed)
	mergePtr(&out.BorderNormalFixed, overlay.BorderNormalFixed)
	mergePtr(&out.Margin, overlay.Margin)
	mergePtr(&out.MarginSingle, overlay.MarginSingle)
	mergePtr(&out.MinSize, overlay.MinSize)
	mergePtr(&out.MaxRestoreMementos, overlay.MaxRestoreMementos)
	mergePtr(&out.LogLevel, overlay.LogLevel)
	mergePtr(&out.ReconcileInterval, overlay.ReconcileInterval)
	mergePtr(&out.PaletteBackend, overlay.PaletteBackend)
	mergePtr(&out.MoveModeKey, overlay.MoveModeKey)
	mergePtr(&out.MoveModeTimeout, overlay.MoveModeTimeout)

	if overlay.ScreenPadding != nil {
		base := RawMargins{}
		if out.ScreenPadding != nil {
			base = *out.ScreenPadding
		}
		merged := mergeRawMargins(base, *overlay.ScreenPadding)
		out.ScreenPadding = &merged
	}
	if overlay.TileRegion != nil {
		base := RawTileRegion{}
		if out.TileRegion != nil {
			base = *out.TileRegion
		}
		merged := mergeRawTileRegion(base, *overlay.TileRegion)
		out.TileRegion = &merged
	}

	// Lists replace rather than append so a later file can clear them.
	if overlay.IgnoreClasses != nil {
		out.IgnoreClasses = append([]string(nil), overlay.IgnoreClasses...)
	}
	if overlay.Keybindings != nil {
		out.Keybindings = mergeStringMap(out.Keybindings, overlay.Keybindings)
	}

	return out
}

func mergePtr[T any](dst **T, overlay *T) {
	if overlay != nil {
		*dst = overlay
	}
}

func mergeRawMargins(base RawMargins, overlay RawMargins) RawMargins {
	out := base
	mergePtr(&out.Top, overlay.Top)
	mergePtr(&out.Bottom, overlay.Bottom)
	mergePtr(&out.Left, overlay.Left)
	mergePtr(&out.Right, overlay.Right)
	return out
}

func mergeRawTileRegion(base RawTileRegion, overlay RawTileRegion) RawTileRegion {
	out := base
	mergePtr(&out.Type, overlay.Type)
	mergePtr(&out.XPercent, overlay.XPercent)
	mergePtr(&out.YPercent, overlay.YPercent)
	mergePtr(&out.WidthPercent, overlay.WidthPercent)
	mergePtr(&out.HeightPercent, overlay.HeightPercent)
	return out
}

func mergeStringMap(base map[string]string, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
