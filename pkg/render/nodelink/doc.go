// Package nodelink renders scene frames as Graphviz graphs.
//
// # Overview
//
// Every visible marker becomes a node pinned at its pixel position and every
// leg becomes an edge from the marker's original position to its foot. The
// centroid of the active cluster, when there is one, is drawn as a small
// point. Graphviz's neato engine honours pinned positions, so the result is
// a faithful plot of the frame that can be annotated or restyled with
// standard DOT tooling.
//
// # Usage
//
//	dot := nodelink.ToDOT(sc.Frame(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Graphviz's y axis points up; ToDOT flips coordinates so the plot matches
// the SVG renderer.
package nodelink
