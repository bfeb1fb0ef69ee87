// Package palette shows layout commands in an external launcher (rofi,
// fuzzel, wofi or dmenu) and returns the one the user picked.
package palette

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCancelled is returned when the user closes the launcher without picking.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row in the launcher.
type Item struct {
	Label    string
	Action   string // returned on selection
	Icon     string // rofi/fuzzel/wofi icon name
	Meta     string // hidden search keywords
	IsHeader bool   // non-selectable where the launcher allows it
	IsActive bool
}

// Capabilities describes what a launcher supports.
type Capabilities struct {
	Icons         bool
	Markup        bool
	NonSelectable bool
	IndexOutput   bool // prints the selected row index instead of its text
	MessageBar    bool
	RowStates     bool
}

// Backend shows items and returns the selected one.
type Backend interface {
	Show(prompt string, items []Item, message string) (Item, error)
	Capabilities() Capabilities
	Name() string
}

// Backends lists the supported launcher names in detection order.
var Backends = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// NewBackend creates a launcher by name. "auto" and "" pick the first one
// found in PATH.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}
	kind, ok := kindByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(Backends, ", "))
	}
	if _, err := lookPath(name); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", name)
	}
	return newLauncher(kind), nil
}
