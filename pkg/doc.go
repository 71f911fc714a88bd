// Package pkg provides the libraries behind Spiderfy, a marker spiderfier for
// slippy maps.
//
// # Overview
//
// When several markers sit on (or within a few pixels of) the same spot, a
// click on any of them fans the group out around their common centre, each
// marker on the end of a short leg, so every one of them can be seen and
// clicked. A click elsewhere folds them back. The pkg directory is organized
// into three areas:
//
//  1. Geometry - [proximity], [layout], and [assign] compute neighbourhoods,
//     foot positions, and the marker-to-foot bijection in pixel space.
//  2. Engine - [spider] is the state machine that tracks markers, reacts to
//     host notifications, and publishes through [events]; deferred status
//     passes run on [schedule].
//  3. Hosting - [scene] is a headless map surface driven by scene files, and
//     [render] draws its frames as SVG, JSON, or Graphviz output.
//
// # Architecture
//
// The data flow of one click:
//
//	host click notification
//	         ↓
//	    [spider] Engine.Click (projection → pixel space)
//	         ↓
//	    [proximity] neighbourhood within nearby distance
//	         ↓
//	    [layout] circle or spiral feet around the centroid
//	         ↓
//	    [assign] nearest marker to each foot
//	         ↓
//	    markers moved, legs drawn, [events] spiderfy published
//
// # Quick Start
//
// Load a scene, click a marker, and render the frame:
//
//	f, _ := scene.Load("plaza.toml")
//	sc, _ := scene.Build(f)
//	sc.Click("cafe")
//	svg := render.RenderSVG(sc.Frame(), render.WithLabels())
//
// A real map binding implements [spider.Surface] and [spider.Marker] over its
// widget toolkit and hands them to [spider.New] the same way [scene] does.
//
// # Supporting Packages
//
// [errors] carries structured error codes, [observability] the optional
// engine hooks, and [buildinfo] the version injected at build time.
package pkg
