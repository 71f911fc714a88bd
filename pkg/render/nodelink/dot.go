package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/scene"
)

// Options configures DOT output.
type Options struct {
	// Detailed adds the z-index and status to node labels.
	Detailed bool
}

// ToDOT converts a frame to a neato graph with pinned node positions.
func ToDOT(fr scene.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%.2f,%.2f\";\n", fr.Width, fr.Height)
	buf.WriteString("\n")

	pos := func(x, y float64) string {
		return fmt.Sprintf("%.2f,%.2f!", x, fr.Height-y)
	}

	for _, m := range fr.Markers {
		if !m.Visible || !m.OnMap {
			continue
		}
		attrs := fmtAttrs(m, fmtLabel(m, opts.Detailed))
		attrs = append(attrs, fmt.Sprintf("pos=%q", pos(m.Point.X, m.Point.Y)))
		fmt.Fprintf(&buf, "  %q [%s];\n", m.ID, strings.Join(attrs, ", "))
	}

	if len(fr.Legs) > 0 {
		buf.WriteString("\n")
	}
	for _, m := range fr.Markers {
		if m.Origin == nil {
			continue
		}
		origin := "origin:" + m.ID
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.05, pos=%q];\n", origin, pos(m.Origin.X, m.Origin.Y))
		fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", origin, m.ID, legColor(fr, m))
	}
	if fr.Body != nil {
		fmt.Fprintf(&buf, "  \"body\" [shape=point, width=0.08, color=red, pos=%q];\n", pos(fr.Body.X, fr.Body.Y))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// legColor finds the leg ending at m's foot.
func legColor(fr scene.Frame, m scene.FrameMarker) string {
	for _, l := range fr.Legs {
		if l.To == m.Point {
			return l.Color
		}
	}
	return "#444"
}

func fmtLabel(m scene.FrameMarker, detailed bool) string {
	if !detailed {
		return m.ID
	}
	parts := []string{fmt.Sprintf("z: %d", m.Z)}
	if m.Status != "" {
		parts = append(parts, string(m.Status))
	}
	return m.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(m scene.FrameMarker, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if m.Spiderfied {
		attrs = append(attrs, "fillcolor=\"#e4572e\"", "fontcolor=white")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return pixelSized(buf.Bytes()), nil
}

// rootSVG matches Graphviz's root element, which is sized in points.
var rootSVG = regexp.MustCompile(`<svg\b[^>]*\bviewBox="([^"]+)"[^>]*>`)

// pixelSized rewrites the root element to pixel width and height over the
// same viewBox, so the output lines up with frame SVGs.
func pixelSized(svg []byte) []byte {
	loc := rootSVG.FindSubmatchIndex(svg)
	if loc == nil {
		return svg
	}
	var x, y, w, h float64
	if n, _ := fmt.Sscanf(string(svg[loc[2]:loc[3]]), "%g %g %g %g", &x, &y, &w, &h); n != 4 || w <= 0 || h <= 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g" width="%.0f" height="%.0f">`,
		x, y, w, h, w, h)
	out := make([]byte, 0, len(svg))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}
