package cli

import (
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/profile"
)

// loadProfile loads the file named by args, or the .mandev.* config in the
// working directory when args is empty. It returns the path it read.
func loadProfile(args []string) (*profile.Document, string, error) {
	if len(args) > 0 {
		doc, err := profile.LoadFile(args[0])
		return doc, args[0], err
	}
	return profile.LoadDir(".")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of stdout, or fallback when unknown.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
