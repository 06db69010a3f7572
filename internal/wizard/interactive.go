// Package wizard asks for the media source when none is given on the
// command line.
package wizard

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin and stdout are both terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NeedsSource returns true if the media argument is missing.
func NeedsSource(args []string) bool {
	return len(args) == 0
}

// CanPrompt returns true if the source form can be shown.
func CanPrompt(args []string, enabled bool) bool {
	return enabled && NeedsSource(args) && IsTerminal()
}
