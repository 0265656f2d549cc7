//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Render builds the CLI and typesets every chapter of book, e.g.
// `mage render Acts`. Failed chapters are reported and skipped.
func Render(book string) error {
	mg.Deps(Init, Build)

	cmd := exec.Command(filepath.Join(binDir, binName), "render", book, "--continue-on-error", "--incremental")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rendering %s: %w", book, err)
	}
	return nil
}

// Test runs the unit tests for both SQLite drivers.
func Test() error {
	for _, args := range [][]string{
		{"test", "./..."},
		{"test", "-tags", "purego", "./internal/verses/..."},
	} {
		cmd := exec.Command("go", args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("go %v: %w", args, err)
		}
	}
	return nil
}
