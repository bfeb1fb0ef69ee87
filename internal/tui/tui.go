package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/flextile/internal/ipc"
)

// Daemon is the subset of the IPC client the watch view uses.
type Daemon interface {
	GetTree(debug bool) (*ipc.TreeData, error)
	Exec(command string) error
}

var _ Daemon = (*ipc.Client)(nil)

// Watch runs the live layout view until the user quits. The daemon's tree
// is polled every interval.
func Watch(client Daemon, interval time.Duration) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("watch requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(client, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
