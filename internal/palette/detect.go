package palette

import (
	"fmt"
	"os/exec"
	"strings"
)

var lookPath = exec.LookPath

// DetectBackend returns the first launcher found in PATH, in the order of
// Backends.
func DetectBackend() (string, error) {
	for _, name := range Backends {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(Backends, ", "))
}
