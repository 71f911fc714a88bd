// Package cli implements the spiderfy command-line interface.
//
// This package provides commands for loading scene files, driving the spider
// engine through scripted and interactive clicks, and rendering, inspecting,
// or serving the result. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Write a scene frame as SVG, Graphviz SVG, JSON, PDF, or PNG
//   - inspect: Tabulate markers with their status and neighbour counts
//   - layout: Tabulate the feet the layout generator produces for N markers
//   - play: Click through a scene interactively in the terminal
//   - serve: Drive a scene over HTTP with Prometheus metrics
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context and handed to the engine with a "spider"
// prefix, so engine transitions show up alongside command output.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli
