// Command spiderfy loads, renders, inspects, and serves spiderfier scenes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderfy/internal/cli"
)

// exitInterrupted follows the shell convention of 128+SIGINT.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	c := cli.New(stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Raise the level before the root hook hands the logger to subcommands.
	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return next(cmd, args)
	}

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		fmt.Fprintln(stderr, err)
		return 1
	}
}
