// Package render draws scene frames.
//
// # Overview
//
// A [scene.Frame] is a pixel-space snapshot of markers and legs. This package
// turns it into:
//
//   - SVG, drawn directly ([RenderSVG])
//   - JSON, for tooling and the HTTP server ([RenderJSON])
//   - PNG, rasterized with gg ([RenderPNG])
//   - PDF via rsvg-convert ([ToPDF])
//
// The [nodelink] subpackage emits the same frame as a Graphviz graph with
// pinned positions, which is handy for checking foot placement against the
// original positions.
//
//	fr := sc.Frame()
//	svg := render.RenderSVG(fr, render.WithLabels(), render.WithOrigins())
//	png, err := render.RenderPNG(fr, 2, render.WithLabels())
//
// Markers and legs are painted in z-index order, so a spiderfied cluster and
// its legs always sit above ordinary markers, as they would on a live map.
//
// [nodelink]: github.com/matzehuels/spiderfy/pkg/render/nodelink
package render
