package cli

import (
	"os"

	"golang.org/x/term"
)

// isOutputTerminal reports whether stdout is a TTY. When output is piped or
// redirected the review command emits JSON instead of a rendered report.
func isOutputTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
