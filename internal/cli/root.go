package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderfy/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Every subcommand receives the CLI's logger through its context, so code
// below the command layer calls loggerFromContext rather than reaching for
// the CLI struct.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Spiderfy fans out overlapping map markers",
		Long:         `Spiderfy is a developer tool for the marker spiderfier library. It loads scene files describing a map viewport and its markers, drives the spider engine through scripted clicks, and renders, inspects, or serves the result.`,
		Version:      buildinfo.Current(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
