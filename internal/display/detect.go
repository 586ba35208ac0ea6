package display

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects which surface a session uses.
type Mode int

const (
	// ModeLine writes a plain transcript; used for pipes and redirected output.
	ModeLine Mode = iota
	// ModeTerminal runs the full-screen terminal surface.
	ModeTerminal
)

// DetectMode picks the terminal surface only when both stdin and stdout are
// terminals and neither CI nor VFSH_NON_INTERACTIVE=1 is set.
func DetectMode() Mode {
	if os.Getenv("VFSH_NON_INTERACTIVE") == "1" || os.Getenv("CI") != "" {
		return ModeLine
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeLine
	}
	return ModeTerminal
}

// ResolveMode applies an "always"/"never"/"auto" preference on top of DetectMode.
func ResolveMode(preference string) Mode {
	switch preference {
	case "always":
		return ModeTerminal
	case "never":
		return ModeLine
	default:
		return DetectMode()
	}
}

// IsTerminal reports whether r is a terminal device. Terminals show typed
// input themselves, so a line session should not echo it again.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
