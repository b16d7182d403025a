package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockgrid/internal/cli"
	"github.com/matzehuels/blockgrid/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		if code := errors.GetCode(err); code != "" {
			fmt.Fprintf(os.Stderr, "error [%s]: %v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level must be set before the root hook attaches the logger.
	configure := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if configure != nil {
			return configure(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
