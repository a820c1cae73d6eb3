// internal/shellopen/shellopen.go
//
// Hand-off points to the operating system shell: open a file with its
// default application, or reveal a path in the platform file browser.
// Callers treat failures as diagnostics, nothing downstream depends on
// them.

package shellopen

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Open launches path with the OS default application.
func Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("shellopen: open %s: %w", path, err)
	}
	return nil
}

// Reveal shows path in the platform file browser. Where the platform has
// no select-in-browser verb, the parent directory is opened instead.
func Reveal(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-R", path)
	case "windows":
		cmd = exec.Command("explorer", "/select,", path)
	default:
		cmd = exec.Command("xdg-open", filepath.Dir(path))
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("shellopen: reveal %s: %w", path, err)
	}
	return nil
}
