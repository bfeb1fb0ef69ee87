package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Margins represents padding around a screen edge.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// RegionType defines tile region presets.
type RegionType string

const (
	RegionFull       RegionType = "full"
	RegionLeftHalf   RegionType = "left-half"
	RegionRightHalf  RegionType = "right-half"
	RegionTopHalf    RegionType = "top-half"
	RegionBottomHalf RegionType = "bottom-half"
	RegionCustom     RegionType = "custom"
)

// TileRegion defines which part of each monitor the layout covers.
type TileRegion struct {
	Type          RegionType `yaml:"type"`
	XPercent      int        `yaml:"x_percent"`      // 0-100
	YPercent      int        `yaml:"y_percent"`      // 0-100
	WidthPercent  int        `yaml:"width_percent"`  // 0-100
	HeightPercent int        `yaml:"height_percent"` // 0-100
}

const (
	DefaultMinSize            = 10
	DefaultMaxRestoreMementos = 16
	DefaultReconcileInterval  = 2
	DefaultMoveModeTimeout    = 10
)

// Config is the effective daemon configuration.
type Config struct {
	BorderWidth        int               `yaml:"border_width"`
	BorderWidthSingle  int               `yaml:"border_width_single"`
	BorderFocus        string            `yaml:"border_focus"`
	BorderNormal       string            `yaml:"border_normal"`
	BorderFocusFixed   string            `yaml:"border_focus_fixed"`
	BorderNormalFixed  string            `yaml:"border_normal_fixed"`
	Margin             int               `yaml:"margin"`
	MarginSingle       int               `yaml:"margin_single"`
	MinSize            int               `yaml:"min_size"`
	MaxRestoreMementos int               `yaml:"max_restore_mementos"`
	ScreenPadding      Margins           `yaml:"screen_padding"`
	TileRegion         TileRegion        `yaml:"tile_region"`
	IgnoreClasses      []string          `yaml:"ignore_classes"`
	LogLevel           string            `yaml:"log_level"`
	ReconcileInterval  int               `yaml:"reconcile_interval"` // seconds, 0 disables polling
	PaletteBackend     string            `yaml:"palette_backend"`    // auto, rofi, fuzzel, wofi, dmenu
	MoveModeKey        string            `yaml:"move_mode_key"`      // empty disables move mode
	MoveModeTimeout    int               `yaml:"move_mode_timeout"`  // seconds
	Keybindings        map[string]string `yaml:"keybindings"`
}

func DefaultConfig() *Config {
	return &Config{
		BorderWidth:        2,
		BorderWidthSingle:  0,
		BorderFocus:        "#5e81ac",
		BorderNormal:       "#3b4252",
		BorderFocusFixed:   "#d08770",
		BorderNormalFixed:  "#4c566a",
		Margin:             4,
		MarginSingle:       0,
		MinSize:            DefaultMinSize,
		MaxRestoreMementos: DefaultMaxRestoreMementos,
		TileRegion:         TileRegion{Type: RegionFull},
		IgnoreClasses:      []string{},
		LogLevel:           "info",
		ReconcileInterval:  DefaultReconcileInterval,
		PaletteBackend:     "auto",
		MoveModeKey:        "Mod4-Return",
		MoveModeTimeout:    DefaultMoveModeTimeout,
		Keybindings:        defaultKeybindings(),
	}
}

func defaultKeybindings() map[string]string {
	out := map[string]string{
		"Mod4-tab":     "focus recent",
		"Mod4-n":       "focus next",
		"Mod4-p":       "focus previous",
		"Mod4-b":       "mode horizontal",
		"Mod4-v":       "mode vertical",
		"Mod4-Shift-b": "mode horizontal-split",
		"Mod4-Shift-v": "mode vertical-split",
		"Mod4-equal":   "grow 50",
		"Mod4-minus":   "grow -50",
		"Mod4-0":       "reset-size",
		"Mod4-m":       "minimize",
		"Mod4-r":       "retile",
		"Mod4-Shift-q": "close",
	}
	keys := map[string]string{"h": "left", "j": "down", "k": "up", "l": "right"}
	for key, dir := range keys {
		out["Mod4-"+key] = "focus " + dir
		out["Mod4-Shift-"+key] = "move " + dir
		out["Mod4-Control-"+key] = "integrate " + dir
		out["Mod4-Mod1-"+key] = "swap " + dir
	}
	return out
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Ignored reports whether windows of the given WM_CLASS stay untiled.
func (c *Config) Ignored(class string) bool {
	for _, ignored := range c.IgnoreClasses {
		if strings.EqualFold(ignored, class) {
			return true
		}
	}
	return false
}

// BorderColors resolves the four border colours.
func (c *Config) BorderColors() (BorderColors, error) {
	var out BorderColors
	fields := []struct {
		path  string
		value string
		dst   *uint32
	}{
		{"border_focus", c.BorderFocus, &out.Focus},
		{"border_normal", c.BorderNormal, &out.Normal},
		{"border_focus_fixed", c.BorderFocusFixed, &out.FocusFixed},
		{"border_normal_fixed", c.BorderNormalFixed, &out.NormalFixed},
	}
	for _, f := range fields {
		v, err := ParseColor(f.value)
		if err != nil {
			return BorderColors{}, &ValidationError{Path: f.path, Err: err}
		}
		*f.dst = v
	}
	return out, nil
}

// BorderColors holds border pixels for the four focus/fixed combinations.
type BorderColors struct {
	Focus       uint32
	Normal      uint32
	FocusFixed  uint32
	NormalFixed uint32
}

// Pick returns the colour for a window's focus and fixed-size state.
func (b BorderColors) Pick(focused, fixed bool) uint32 {
	switch {
	case focused && fixed:
		return b.FocusFixed
	case focused:
		return b.Focus
	case fixed:
		return b.NormalFixed
	default:
		return b.Normal
	}
}

// ParseColor parses "#rrggbb" (or "rrggbb") into a 24-bit pixel value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("colour %q must be #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("colour %q must be #rrggbb", s)
	}
	return uint32(v), nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	nonNegative := []struct {
		path  string
		value int
	}{
		{"border_width", c.BorderWidth},
		{"border_width_single", c.BorderWidthSingle},
		{"margin", c.Margin},
		{"margin_single", c.MarginSingle},
		{"reconcile_interval", c.ReconcileInterval},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return &ValidationError{Path: f.path, Err: fmt.Errorf("%s must be >= 0", f.path)}
		}
	}
	if _, err := c.BorderColors(); err != nil {
		return err
	}
	if c.MinSize < 1 {
		return &ValidationError{Path: "min_size", Err: fmt.Errorf("min_size must be >= 1")}
	}
	if c.MoveModeTimeout < 1 {
		return &ValidationError{Path: "move_mode_timeout", Err: fmt.Errorf("move_mode_timeout must be >= 1")}
	}
	if c.MaxRestoreMementos < 1 {
		return &ValidationError{Path: "max_restore_mementos", Err: fmt.Errorf("max_restore_mementos must be >= 1")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	if err := validateTileRegion(c.TileRegion); err != nil {
		return &ValidationError{Path: "tile_region", Err: err}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch c.PaletteBackend {
	case "auto", "rofi", "fuzzel", "wofi", "dmenu":
	default:
		return &ValidationError{Path: "palette_backend", Err: fmt.Errorf("palette_backend must be one of: auto, rofi, fuzzel, wofi, dmenu")}
	}
	for _, class := range c.IgnoreClasses {
		if strings.TrimSpace(class) == "" {
			return &ValidationError{Path: "ignore_classes", Err: fmt.Errorf("ignore_classes contains an empty class name")}
		}
	}
	if c.Keybindings == nil {
		return &ValidationError{Path: "keybindings", Err: fmt.Errorf("keybindings must not be null")}
	}
	for key, cmd := range c.Keybindings {
		if c.MoveModeKey != "" && key == c.MoveModeKey {
			return &ValidationError{Path: "keybindings." + key, Err: fmt.Errorf("%s is already used by move_mode_key", key)}
		}
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: "keybindings", Err: fmt.Errorf("keybindings contains an empty key sequence")}
		}
		if strings.TrimSpace(cmd) == "" {
			return &ValidationError{Path: "keybindings." + key, Err: fmt.Errorf("command must not be empty")}
		}
	}
	return nil
}

func validateTileRegion(region TileRegion) error {
	switch region.Type {
	case RegionFull, RegionLeftHalf, RegionRightHalf, RegionTopHalf, RegionBottomHalf:
		// ok
	case RegionCustom:
		if region.XPercent < 0 || region.XPercent > 100 {
			return fmt.Errorf("x_percent must be between 0 and 100")
		}
		if region.YPercent < 0 || region.YPercent > 100 {
			return fmt.Errorf("y_percent must be between 0 and 100")
		}
		if region.WidthPercent <= 0 || region.WidthPercent > 100 {
			return fmt.Errorf("width_percent must be between 1 and 100")
		}
		if region.HeightPercent <= 0 || region.HeightPercent > 100 {
			return fmt.Errorf("height_percent must be between 1 and 100")
		}
		if region.XPercent+region.WidthPercent > 100 {
			return fmt.Errorf("x_percent + width_percent must be <= 100")
		}
		if region.YPercent+region.HeightPercent > 100 {
			return fmt.Errorf("y_percent + height_percent must be <= 100")
		}
	default:
		return fmt.Errorf("invalid region type %q", region.Type)
	}
	return nil
}
