package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/pipeline"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

// layoutCommand creates the layout command for computing grid positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [stmts.json|stmts.toml]",
		Short: "Compute grid positions from a statement file",
		Long: `Compute grid positions from a statement file.

The layout command builds the diagram described by a statement file, composes
its groups and assigns every block a column, row and size. The output is a
layout.json file (same format as 'render -T json') that can be rendered with
the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runLayout loads the statements, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache, refresh bool) error {
	stmts, err := stmt.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load statements %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Logger: loggerFromContext(ctx), Refresh: refresh}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.BuildWithCacheInfo(ctx, stmts, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printLayoutWarnings(layout)
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Nodes), len(layout.Edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
