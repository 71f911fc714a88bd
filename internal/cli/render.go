package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderfy/pkg/render"
	"github.com/matzehuels/spiderfy/pkg/render/nodelink"
	"github.com/matzehuels/spiderfy/pkg/scene"
)

// Output formats.
const (
	formatSVG    = "svg"     // frame drawn directly
	formatDotSVG = "dot-svg" // spider drawn by Graphviz neato with pinned positions
	formatJSON   = "json"    // frame and recorded events
	formatPDF    = "pdf"     // frame SVG converted by rsvg-convert
	formatPNG    = "png"     // frame rasterized in-process
)

// formatExt maps each format to the file suffix used when deriving paths.
var formatExt = map[string]string{
	formatSVG:    ".svg",
	formatDotSVG: ".dot.svg",
	formatJSON:   ".json",
	formatPDF:    ".pdf",
	formatPNG:    ".png",
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats
	clicks   []string // marker ids clicked after the script
	labels   bool     // draw marker ids
	origins  bool     // draw original positions of spiderfied markers
	detailed bool     // include status and z-index in Graphviz labels
	events   bool     // embed recorded events in JSON output
	scale    float64  // PNG scale factor
	progress io.Writer
}

// renderCommand creates the render command for writing scene frames.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 2, progress: os.Stderr}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene after its script and clicks have run",
		Long: `Render a scene after its script and clicks have run.

The scene file (TOML or JSON) is built, its script is played, each --click id
is clicked in order, and the resulting frame is written in every requested
format. With a single format and no --output, the result goes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot-svg, json, pdf, png (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.clicks, "click", nil, "marker id to click after the script (repeatable)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw marker ids")
	cmd.Flags().BoolVar(&opts.origins, "origins", false, "draw original positions of spiderfied markers")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show status and z-index (dot-svg)")
	cmd.Flags().BoolVar(&opts.events, "events", false, "include recorded events (json)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "scale factor (png)")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are known.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if _, ok := formatExt[f]; !ok {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'dot-svg', 'json', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A known format
// suffix on output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range []string{formatExt[formatDotSVG], ".svg", ".json", ".pdf", ".png"} {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// runRender builds the scene, plays it, and writes each requested format.
func runRender(ctx context.Context, input string, opts *renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	sc, err := loadScene(ctx, input)
	if err != nil {
		return err
	}
	defer sc.Close()

	if err := runScene(sc, opts.clicks); err != nil {
		return err
	}
	fr := sc.Frame()
	logger.Infof("Scene %s: %d markers, %d legs, state %s", fr.Name, len(fr.Markers), len(fr.Legs), fr.State)

	if len(opts.formats) == 1 && opts.output == "" {
		data, err := renderFrame(ctx, sc, fr, opts.formats[0], opts)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + formatExt[format]
		if len(opts.formats) == 1 {
			path = opts.output
		}
		data, err := renderFrame(ctx, sc, fr, format, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
	}
	prog.done("Rendered " + fr.Name)
	return nil
}

// renderFrame dispatches to the renderer for format.
func renderFrame(ctx context.Context, sc *scene.Scene, fr scene.Frame, format string, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	switch format {
	case formatSVG:
		return render.RenderSVG(fr, svgOptions(opts)...), nil
	case formatJSON:
		jsonOpts := []render.JSONOption{render.WithIndent()}
		if opts.events {
			jsonOpts = append(jsonOpts, render.WithEvents(sc.Events()))
		}
		return render.RenderJSON(fr, jsonOpts...)
	case formatDotSVG:
		dot := nodelink.ToDOT(fr, nodelink.Options{Detailed: opts.detailed})
		logger.Debugf("DOT source: %d bytes", len(dot))
		return withSpinner(ctx, opts.progress, "Running Graphviz", func() ([]byte, error) {
			return nodelink.RenderSVG(ctx, dot)
		})
	case formatPDF:
		return withSpinner(ctx, opts.progress, "Converting to PDF", func() ([]byte, error) {
			return render.ToPDF(ctx, render.RenderSVG(fr, svgOptions(opts)...))
		})
	case formatPNG:
		return render.RenderPNG(fr, opts.scale, svgOptions(opts)...)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func svgOptions(opts *renderOpts) []render.SVGOption {
	var out []render.SVGOption
	if opts.labels {
		out = append(out, render.WithLabels())
	}
	if opts.origins {
		out = append(out, render.WithOrigins())
	}
	return out
}
