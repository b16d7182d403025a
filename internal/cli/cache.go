package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgrid/pkg/cache"
	"github.com/matzehuels/blockgrid/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// localCacheDir returns the directory of the file cache backend.
func (c *CLI) localCacheDir() (string, error) {
	cfg := c.Config.Cache
	if cfg.Backend != backendFile && cfg.Backend != "" {
		return "", errors.New(errors.ErrCodeUnsupported, "cache backend %q has no local directory", cfg.Backend)
	}
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cacheDir()
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.localCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			count := countEntries(dir)
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.localCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// countEntries returns the number of cached files below dir.
func countEntries(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}
