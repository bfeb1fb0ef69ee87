package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/flextile/internal/config"
	"github.com/1broseidon/flextile/internal/ipc"
	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/tui"
	"github.com/1broseidon/flextile/internal/wm"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: flextile daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: flextile daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "tree":
		os.Exit(runTree(os.Args[2:]))
	case "exec":
		os.Exit(runExec(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: flextile <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the flextile daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  tree                Show the layout tree of every display")
	fmt.Fprintln(w, "  exec <command>      Run a layout command, e.g. 'move left'")
	fmt.Fprintln(w, "  windows             List windows and whether they are tiled")
	fmt.Fprintln(w, "  reload              Reload the daemon's configuration")
	fmt.Fprintln(w, "  watch               Live view of the layout tree")
	fmt.Fprintln(w, "  palette             Pick a layout command from rofi/fuzzel/wofi/dmenu")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Layout commands:")
	fmt.Fprintln(w, "  focus left|right|up|down|next|previous|recent|first|last")
	fmt.Fprintln(w, "  move|integrate|swap left|right|up|down")
	fmt.Fprintln(w, "  mode default|horizontal|vertical|horizontal-split|vertical-split")
	fmt.Fprintln(w, "  width|height|size <px>   grow-width|grow-height|grow <delta>")
	fmt.Fprintln(w, "  reset-size  minimize  close  retile")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'flextile <command> --help' for command-specific options.")
}

// parseNoArgs parses a flag set for a command that takes no positional
// arguments. It returns an exit code and false when the caller should stop.
func parseNoArgs(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", fs.Name())
		fs.Usage()
		return 2, false
	}
	return 0, true
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: flextile status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if code, ok := parseNoArgs(fs, args); !ok {
		return code
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("displays:       %d\n", status.Displays)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runTree(args []string) int {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Print the raw tree data as JSON")
	debug := fs.Bool("debug", false, "Include the indented node dump")
	draw := fs.Bool("draw", false, "Draw each display as boxes sized to the terminal")
	display := fs.Int("display", -1, "Only show this display ID")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: flextile tree [--json] [--debug] [--draw] [--display N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the layout tree of every display.")
		fs.PrintDefaults()
	}
	if code, ok := parseNoArgs(fs, args); !ok {
		return code
	}

	client := ipc.NewClient()
	data, err := client.GetTree(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	displays := filterDisplays(data.Displays, *display)
	if *display >= 0 && len(displays) == 0 {
		fmt.Fprintf(os.Stderr, "no layout for display %d\n", *display)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ipc.TreeData{Displays: displays}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	width, height := 80, 20
	if *draw {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			height = max(h/max(len(displays), 1)-8, 5)
		}
	}
	fmt.Print(formatTree(displays, *draw, width, height))
	return 0
}

func filterDisplays(displays []wm.DisplayState, only int) []wm.DisplayState {
	if only < 0 {
		return displays
	}
	var out []wm.DisplayState
	for _, d := range displays {
		if d.DisplayID == only {
			out = append(out, d)
		}
	}
	return out
}

var focusedStyle = lipgloss.NewStyle().Bold(true)

// formatTree renders displays for the terminal: a header per display, one
// line per window and optionally the box drawing and node dump.
func formatTree(displays []wm.DisplayState, draw bool, width, height int) string {
	var b strings.Builder
	for i, d := range displays {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "display %d  %s  mode=%s  mementos=%d\n", d.DisplayID, d.Shape, d.AddMode, d.Mementos)
		boxes := make([]tiling.Box, 0, len(d.Windows))
		for _, w := range d.Windows {
			line := fmt.Sprintf("  %-10d %s", w.Payload, w.Rect)
			var flags []string
			if w.FixedWidth {
				flags = append(flags, "fixed-width")
			}
			if w.FixedHeight {
				flags = append(flags, "fixed-height")
			}
			if w.Minimized {
				flags = append(flags, "minimized")
			}
			if len(flags) > 0 {
				line += "  [" + strings.Join(flags, ",") + "]"
			}
			if w.Focused {
				line = focusedStyle.Render(line + "  *")
			}
			b.WriteString(line)
			b.WriteByte('\n')
			boxes = append(boxes, tiling.Box{Rect: w.Rect, Label: strconv.FormatUint(uint64(w.Payload), 10)})
		}
		if draw {
			b.WriteString(strings.Join(tiling.DrawBoxes(d.Root, boxes, width, height), "\n"))
			b.WriteByte('\n')
		}
		if d.Debug != "" {
			b.WriteString(d.Debug)
		}
	}
	return b.String()
}

func runExec(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: flextile exec <command> [args]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run a layout command on the active display, e.g.:")
		fmt.Fprintln(os.Stderr, "  flextile exec focus left")
		fmt.Fprintln(os.Stderr, "  flextile exec integrate down")
		fmt.Fprintln(os.Stderr, "  flextile exec width 600")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	input := strings.Join(args, " ")
	cmd, err := wm.ParseCommand(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client := ipc.NewClient()
	if err := client.Exec(cmd.String()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Print as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: flextile windows [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List windows on every display and whether they are tiled.")
	}
	if code, ok := parseNoArgs(fs, args); !ok {
		return code
	}

	client := ipc.NewClient()
	data, err := client.GetWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, w := range data.Windows {
		state := "floating"
		switch {
		case w.Tiled && w.Hidden:
			state = "minimized"
		case w.Tiled:
			state = "tiled"
		}
		fmt.Printf("%-10d display=%d  %-9s  %-16s %s\n", w.ID, w.Display, state, w.Class, w.Title)
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: flextile reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon to reload its configuration.")
	}
	if code, ok := parseNoArgs(fs, args); !ok {
		return code
	}

	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	interval := fs.Duration("interval", time.Second, "Refresh interval")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: flextile watch [--interval 1s]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Live view of the daemon's layout tree.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  h/j/k/l, arrows  Focus in a direction")
		fmt.Fprintln(os.Stderr, "  H/J/K/L          Move the focused window")
		fmt.Fprintln(os.Stderr, "  n/p              Focus next/previous")
		fmt.Fprintln(os.Stderr, "  +/-              Grow/shrink the focused window")
		fmt.Fprintln(os.Stderr, "  0                Reset size")
		fmt.Fprintln(os.Stderr, "  m                Toggle minimize")
		fmt.Fprintln(os.Stderr, "  b/v              Next window splits horizontally/vertically")
		fmt.Fprintln(os.Stderr, "  r                Retile")
		fmt.Fprintln(os.Stderr, "  d                Toggle node dump")
		fmt.Fprintln(os.Stderr, "  tab/shift+tab    Switch display")
		fmt.Fprintln(os.Stderr, "  q, Esc, Ctrl+C   Quit")
	}
	if code, ok := parseNoArgs(fs, args); !ok {
		return code
	}

	if err := tui.Watch(ipc.NewClient(), *interval); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func loadResult(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  flextile config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  flextile config print [--path PATH] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  flextile config explain [--path PATH] <yaml.path>")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/flextile/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadResult(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/flextile/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			_ = printEffective // default
			res, err := loadResult(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/flextile/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadResult(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
