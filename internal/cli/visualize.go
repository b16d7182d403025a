package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a diagram from a computed layout",
		Long: `Render a diagram from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG or DOT. The layout already contains every position,
so this step is purely about rendering.

Use 'render' as a shortcut to go directly from statements to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Config.Render)
			if err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(ctx, artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
		open:      flags.open,
		cacheHit:  cacheHit,
		nodes:     len(layout.Nodes),
		edges:     len(layout.Edges),
	})
}
