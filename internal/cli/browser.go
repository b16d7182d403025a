package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/browser"
)

// openInBrowser opens a rendered file for viewing. $BROWSER, when set, names
// the program to use; otherwise the platform default handler is used.
func openInBrowser(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if prog := os.Getenv("BROWSER"); prog != "" {
		cmd := exec.CommandContext(ctx, "sh", "-c", prog+` "$1"`, "--", abs)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("run %v (out: %q): %w", cmd.Args, out, err)
		}
		return nil
	}
	browser.Stdout, browser.Stderr = os.Stderr, os.Stderr
	return browser.OpenFile(abs)
}
