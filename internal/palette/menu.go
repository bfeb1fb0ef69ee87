package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

// MenuItem is a node in a menu hierarchy. Items with a submenu open it
// instead of returning an action.
type MenuItem struct {
	Label    string
	Action   string
	Icon     string
	Meta     string
	IsHeader bool
	IsActive bool
	Submenu  []MenuItem
}

// IsParent reports whether the item opens a submenu.
func (m MenuItem) IsParent() bool { return len(m.Submenu) > 0 }

// Menu walks a MenuItem hierarchy with a Backend.
type Menu struct {
	backend Backend
	root    []MenuItem
	prompt  string
	message string
}

// NewMenu creates a menu shown with the given prompt at its top level.
func NewMenu(backend Backend, prompt string, items []MenuItem) *Menu {
	return &Menu{backend: backend, root: items, prompt: prompt}
}

// SetMessage sets the context line shown by launchers with a message bar.
func (m *Menu) SetMessage(msg string) { m.message = msg }

// Show returns the action of the chosen leaf, or ErrCancelled.
func (m *Menu) Show() (string, error) {
	return m.showLevel(m.root, nil)
}

func (m *Menu) showLevel(items []MenuItem, breadcrumb []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	rows := make([]Item, 0, len(items)+1)
	if len(breadcrumb) > 0 {
		rows = append(rows, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
	}
	for i, item := range items {
		row := Item{
			Label:    item.Label,
			Action:   item.Action,
			Icon:     item.Icon,
			Meta:     item.Meta,
			IsHeader: item.IsHeader,
			IsActive: item.IsActive,
		}
		if item.IsParent() {
			row.Label += " →"
			row.Action = submenuPrefix + strconv.Itoa(i)
		}
		rows = append(rows, row)
	}

	prompt := m.prompt
	if len(breadcrumb) > 0 {
		prompt = breadcrumb[len(breadcrumb)-1]
	}

	for {
		chosen, err := m.backend.Show(prompt, rows, m.message)
		if err != nil {
			return "", err
		}
		// Launchers without non-selectable rows can return a header.
		if chosen.IsHeader || strings.TrimSpace(chosen.Action) == "" {
			continue
		}
		if chosen.Action == backAction {
			return "", ErrCancelled
		}

		if idxStr, ok := strings.CutPrefix(chosen.Action, submenuPrefix); ok {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 || idx >= len(items) || !items[idx].IsParent() {
				continue
			}
			action, err := m.showLevel(items[idx].Submenu, append(breadcrumb, items[idx].Label))
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return action, err
		}
		return chosen.Action, nil
	}
}
