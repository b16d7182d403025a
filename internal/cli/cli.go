package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgrid/pkg/buildinfo"
	"github.com/matzehuels/blockgrid/pkg/cache"
	"github.com/matzehuels/blockgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "blockgrid"

	// configFileName is the name of the config file inside the config dir.
	configFileName = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     *Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blockgrid lays out block diagrams on a grid",
		Long:         `Blockgrid turns declarative node, edge and group statements into a positioned grid of blocks and renders it as SVG, PNG, DOT or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/blockgrid/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns+":")
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == backendNone {
		return cache.NewNullCache(), nil
	}

	var (
		backend cache.Cache
		err     error
	)
	switch cfg.Backend {
	case backendRedis:
		backend, err = cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   appName + ":",
		})
	case backendMongo:
		backend, err = cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
	default:
		dir := cfg.Dir
		if dir == "" {
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		backend, err = cache.NewFileCache(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}
	c.Logger.Debug("opened cache", "backend", cfg.Backend)
	return cache.WithTTL(backend, cfg.TTL), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir is $XDG_CACHE_HOME/blockgrid, falling back to ~/.cache/blockgrid.
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir is $XDG_CONFIG_HOME/blockgrid, falling back to ~/.config/blockgrid.
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, homeSubdir string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeSubdir, appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = pipeline.NormalizeFormat(p)
	}
	return parts
}
