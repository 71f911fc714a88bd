package render

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"

	"github.com/matzehuels/spiderfy/pkg/events"
	"github.com/matzehuels/spiderfy/pkg/scene"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

const markerRadius = 6

var backgrounds = map[string]string{
	spider.MapTypeRoadmap:   "#f2efe9",
	spider.MapTypeTerrain:   "#e4e8d5",
	spider.MapTypeSatellite: "#26331f",
	spider.MapTypeHybrid:    "#2c3a27",
}

// statusFill colours markers by their last format status.
var statusFill = map[events.Status]string{
	events.StatusSpiderfied:     "#e4572e",
	events.StatusSpiderfiable:   "#f3a712",
	events.StatusUnspiderfiable: "#29335c",
	events.StatusUnspiderfied:   "#29335c",
}

const markerCSS = `
    .marker { stroke: #fff; stroke-width: 1.5; }
    .marker.spiderfied { stroke: #000; }
    .origin { fill: none; stroke: #888; stroke-dasharray: 2 2; }
    .label { font: 11px sans-serif; fill: #111; }
    .title { font: bold 13px sans-serif; fill: #111; }`

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels  bool
	origins bool
	title   string
	bg      string
}

// WithLabels writes each marker's id next to it.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithOrigins outlines the original position of every spiderfied marker.
func WithOrigins() SVGOption { return func(r *svgRenderer) { r.origins = true } }

// WithTitle writes a caption in the top-left corner.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithBackground overrides the map-type background colour.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.bg = c } }

// RenderSVG draws fr as a standalone SVG document.
func RenderSVG(fr scene.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{bg: backgrounds[fr.MapType]}
	for _, opt := range opts {
		opt(&r)
	}
	if r.bg == "" {
		r.bg = backgrounds[spider.MapTypeRoadmap]
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		fr.Width, fr.Height, fr.Width, fr.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", markerCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.bg)

	if r.origins {
		renderOrigins(&buf, fr)
	}
	renderLegs(&buf, fr.Legs)
	renderMarkers(&buf, fr.Markers, r.labels)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="8" y="18">%s</text>`+"\n", html.EscapeString(r.title))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderOrigins(buf *bytes.Buffer, fr scene.Frame) {
	for _, m := range fr.Markers {
		if m.Origin == nil {
			continue
		}
		fmt.Fprintf(buf, `  <circle class="origin" cx="%.2f" cy="%.2f" r="%d"/>`+"\n", m.Origin.X, m.Origin.Y, markerRadius)
	}
	if fr.Body != nil {
		fmt.Fprintf(buf, `  <path class="origin" d="M%.2f %.2fh6M%.2f %.2fv6"/>`+"\n",
			fr.Body.X-3, fr.Body.Y, fr.Body.X, fr.Body.Y-3)
	}
}

func renderLegs(buf *bytes.Buffer, legs []scene.FrameLeg) {
	sorted := slices.Clone(legs)
	slices.SortStableFunc(sorted, func(a, b scene.FrameLeg) int { return cmp.Compare(a.Z, b.Z) })
	for _, l := range sorted {
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			l.From.X, l.From.Y, l.To.X, l.To.Y, l.Color, l.Weight)
	}
}

func renderMarkers(buf *bytes.Buffer, markers []scene.FrameMarker, labels bool) {
	sorted := slices.Clone(markers)
	slices.SortStableFunc(sorted, func(a, b scene.FrameMarker) int { return cmp.Compare(a.Z, b.Z) })
	for _, m := range sorted {
		if !m.Visible || !m.OnMap {
			continue
		}
		class := "marker"
		if m.Spiderfied {
			class += " spiderfied"
		}
		fill, ok := statusFill[m.Status]
		if !ok {
			fill = "#777"
		}
		fmt.Fprintf(buf, `  <circle id="marker-%s" class="%s" cx="%.2f" cy="%.2f" r="%d" fill="%s"/>`+"\n",
			html.EscapeString(m.ID), class, m.Point.X, m.Point.Y, markerRadius, fill)
		if labels {
			fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f">%s</text>`+"\n",
				m.Point.X+markerRadius+2, m.Point.Y+4, html.EscapeString(m.ID))
		}
	}
}
