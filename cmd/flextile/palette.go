package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/flextile/internal/ipc"
	"github.com/1broseidon/flextile/internal/palette"
	"github.com/1broseidon/flextile/internal/wm"
)

func runPalette(args []string) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/flextile/config.yaml)")
	backendName := fs.String("backend", "", "Launcher to use: auto, rofi, fuzzel, wofi, dmenu (default: palette_backend)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: flextile palette [--path PATH] [--backend NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pick a layout command from a launcher menu and run it on the active display.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseNoArgs(fs, args); !ok {
		return code
	}

	name := *backendName
	if name == "" {
		res, err := loadResult(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		name = res.Config.PaletteBackend
	}
	backend, err := palette.NewBackend(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client := ipc.NewClient()
	tree, err := client.GetTree(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	addMode, message := paletteContext(tree.Displays)

	menu := palette.NewMenu(backend, "flextile", palette.CommandMenu(addMode))
	menu.SetMessage(message)
	action, err := menu.Show()
	if err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := client.Exec(action); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// paletteContext returns the add mode of the display holding the focused
// window and a one-line summary for the launcher's message bar.
func paletteContext(displays []wm.DisplayState) (string, string) {
	var addMode string
	var parts []string
	for _, d := range displays {
		focused := false
		for _, w := range d.Windows {
			if w.Focused {
				focused = true
			}
		}
		label := fmt.Sprintf("display %d: %d windows", d.DisplayID, len(d.Windows))
		if focused {
			addMode = d.AddMode
			label += " (" + d.AddMode + ")"
		}
		parts = append(parts, label)
	}
	return addMode, strings.Join(parts, " · ")
}
