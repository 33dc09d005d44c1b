package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/magnuspl/navnetips/internal/ports"
)

// isTerminal reports whether v is an *os.File attached to a character
// device. Pipes, regular files and in-memory writers are not.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// resolveColor decides whether out gets ANSI colors. --no-color and
// NO_COLOR win over --color; "auto" colors only a terminal.
func resolveColor(mode string, noColor bool, out io.Writer) (bool, error) {
	switch mode {
	case "auto", "always", "never":
	default:
		return false, fmt.Errorf("%w: --color %q (want auto, always or never)", ports.ErrInvalidArgument, mode)
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false, nil
	}
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return isTerminal(out), nil
}
