package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgrid/pkg/pipeline"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

// renderFlags holds the command-line flags shared by render and visualize.
type renderFlags struct {
	formats    string
	output     string
	font       string
	antialias  bool
	noDoctype  bool
	noCache    bool
	refresh    bool
	open       bool
	cellWidth  int
	cellHeight int
	spanWidth  int
	spanHeight int
}

// register adds the render flags to cmd.
func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "T", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple), - for stdout")
	cmd.Flags().StringVarP(&f.font, "font", "f", "", "font name or path to a font file")
	cmd.Flags().BoolVarP(&f.antialias, "antialias", "a", false, "render PNG at double resolution")
	cmd.Flags().BoolVar(&f.noDoctype, "nodoctype", false, "omit the XML declaration and DOCTYPE (svg only)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&f.open, "open", false, "open the rendered file ($BROWSER or the system default)")
	cmd.Flags().IntVar(&f.cellWidth, "cell-width", 0, "node width in pixels (default 128)")
	cmd.Flags().IntVar(&f.cellHeight, "cell-height", 0, "node height in pixels (default 40)")
	cmd.Flags().IntVar(&f.spanWidth, "span-width", 0, "horizontal gap between nodes in pixels (default 64)")
	cmd.Flags().IntVar(&f.spanHeight, "span-height", 0, "vertical gap between nodes in pixels (default 40)")
}

// options merges the config file with the flags. Flags set on the command
// line win over config values.
func (f *renderFlags) options(cmd *cobra.Command, cfg RenderConfig) (pipeline.Options, error) {
	changed := cmd.Flags().Changed

	opts := pipeline.Options{
		Antialias:  cfg.Antialias,
		NoDoctype:  cfg.NoDoctype,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		SpanWidth:  cfg.SpanWidth,
		SpanHeight: cfg.SpanHeight,
		Refresh:    f.refresh,
	}

	switch {
	case changed("format"):
		opts.Formats = parseFormats(f.formats)
	case cfg.Format != "":
		opts.Formats = []string{cfg.Format}
	default:
		opts.Formats = []string{pipeline.FormatSVG}
	}
	if changed("antialias") {
		opts.Antialias = f.antialias
	}
	if changed("nodoctype") {
		opts.NoDoctype = f.noDoctype
	}
	if changed("cell-width") {
		opts.CellWidth = f.cellWidth
	}
	if changed("cell-height") {
		opts.CellHeight = f.cellHeight
	}
	if changed("span-width") {
		opts.SpanWidth = f.spanWidth
	}
	if changed("span-height") {
		opts.SpanHeight = f.spanHeight
	}

	font, err := resolveFont(f.font, cfg)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts.Font = font

	if err := opts.ValidateForRender(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags renderFlags
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "render [stmts.json|stmts.toml]",
		Short: "Build, lay out and render a block diagram",
		Long: `Build, lay out and render a block diagram.

The render command reads a statement file (JSON or TOML), composes groups,
assigns grid positions and renders the result with Graphviz. It is a
shortcut for 'layout' followed by 'visualize'.

Results are cached locally for faster subsequent runs. With --watch the
diagram is rendered again whenever the statement file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Config.Render)
			if err != nil {
				return err
			}
			ctx, input := cmd.Context(), args[0]

			err = c.runRender(ctx, input, opts, flags)
			if !watch {
				return err
			}
			if err != nil {
				printError("%s", err)
			}

			printInfo("Watching %s for changes (ctrl+c to stop)", input)
			flags.open = false
			return watchFile(ctx, input, func() {
				if err := c.runRender(ctx, input, opts, flags); err != nil {
					printError("%s", err)
				}
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "render again when the input changes")
	return cmd
}

// runRender loads the statements and runs the full pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	logger := loggerFromContext(ctx)

	stmts, err := stmt.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load statements %s: %w", input, err)
	}
	logger.Debug("loaded statements", "file", input, "count", len(stmts))

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	result, err := runner.Execute(ctx, stmts, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}

	printLayoutWarnings(result.Layout)
	return writeArtifacts(ctx, artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
		open:      flags.open,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		nodes:     result.Stats.NodeCount,
		edges:     result.Stats.EdgeCount,
	})
}
