package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

var kindByName = map[string]launcherKind{
	"rofi":   kindRofi,
	"fuzzel": kindFuzzel,
	"wofi":   kindWofi,
	"dmenu":  kindDmenu,
}

// runFunc runs a launcher with the given stdin and returns its trimmed
// stdout.
type runFunc func(command string, args []string, stdin string) (string, error)

type launcher struct {
	command string
	kind    launcherKind
	caps    Capabilities
	run     runFunc
}

func newLauncher(kind launcherKind) *launcher {
	l := &launcher{kind: kind, run: runCommand}
	switch kind {
	case kindRofi:
		l.command = "rofi"
		l.caps = Capabilities{Icons: true, Markup: true, NonSelectable: true, IndexOutput: true, MessageBar: true, RowStates: true}
	case kindFuzzel:
		l.command = "fuzzel"
		l.caps = Capabilities{Icons: true, IndexOutput: true}
	case kindWofi:
		l.command = "wofi"
		l.caps = Capabilities{Icons: true, Markup: true}
	default:
		l.command = "dmenu"
	}
	return l
}

func (l *launcher) Name() string { return l.command }

func (l *launcher) Capabilities() Capabilities { return l.caps }

func (l *launcher) Show(prompt string, items []Item, message string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}
	shown := make([]Item, len(items))
	copy(shown, items)

	input, selected := l.formatInput(shown)
	selection, err := l.run(l.command, l.buildArgs(prompt, message, shown, selected), input)
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		return Item{}, err
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parseSelection(selection, shown)
}

func (l *launcher) buildArgs(prompt, message string, items []Item, selected int) []string {
	var args []string
	switch l.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		var active []string
		for i, item := range items {
			if item.IsActive && !item.IsHeader {
				active = append(active, strconv.Itoa(i))
			}
		}
		if len(active) > 0 {
			args = append(args, "-a", strings.Join(active, ","))
		}
		if selected >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(selected))
		}
		if message != "" {
			args = append(args, "-mesg", html.EscapeString(message))
		}
	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt+" ")
		}
	case kindWofi:
		args = []string{"--dmenu", "--allow-markup", "--allow-images"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	default:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}
	return args
}

// formatInput renders one line per item and returns the row to preselect,
// or -1. Launchers that print the chosen text get duplicate labels
// numbered so the selection stays unambiguous.
func (l *launcher) formatInput(items []Item) (string, int) {
	if !l.caps.IndexOutput {
		seen := make(map[string]int)
		for i := range items {
			if items[i].IsHeader {
				continue
			}
			key := sanitizeLabel(items[i].Label)
			if n := seen[key]; n > 0 {
				items[i].Label = fmt.Sprintf("%s (%d)", key, n+1)
			}
			seen[key]++
		}
	}

	selected, firstSelectable := -1, -1
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = l.formatItem(item)
		if item.IsHeader {
			continue
		}
		if firstSelectable < 0 {
			firstSelectable = i
		}
		if item.IsActive && selected < 0 {
			selected = i
		}
	}
	if selected < 0 {
		selected = firstSelectable
	}
	return strings.Join(lines, "\n"), selected
}

func (l *launcher) formatItem(item Item) string {
	text := sanitizeLabel(item.Label)
	if l.caps.Markup {
		text = html.EscapeString(text)
		if item.IsHeader {
			text = "<b>" + text + "</b>"
		}
	}
	if l.kind != kindRofi {
		return text
	}

	// rofi row options: one NUL, then key\x1fvalue pairs joined by \x1f.
	var attrs []string
	if item.IsHeader {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" {
		attrs = append(attrs, "icon", sanitizeField(item.Icon))
	}
	if item.Meta != "" {
		attrs = append(attrs, "meta", sanitizeField(item.Meta))
	}
	if len(attrs) == 0 {
		return text
	}
	return text + "\x00" + strings.Join(attrs, "\x1f")
}

func (l *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if l.caps.IndexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func runCommand(command string, args []string, stdin string) (string, error) {
	cmd := exec.Command(command, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil && !isCancelExit(err) {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return selection, fmt.Errorf("%s failed: %s: %w", command, msg, err)
		}
		return selection, fmt.Errorf("%s failed: %w", command, err)
	}
	return selection, err
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

// isCancelExit reports the exit codes launchers use for "nothing chosen":
// 1 for Escape and 130 for Ctrl+C.
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
