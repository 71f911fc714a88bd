package scene

import (
	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/events"
	"github.com/matzehuels/spiderfy/pkg/proximity"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

// Frame is a pixel-space snapshot of a scene.
type Frame struct {
	Name    string  `json:"name,omitempty"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Zoom    int     `json:"zoom"`
	MapType string  `json:"map_type"`
	State   string  `json:"state"`

	Markers []FrameMarker `json:"markers"`
	Legs    []FrameLeg    `json:"legs"`
	// Body is the centroid of the active cluster, if any.
	Body *geom.Coord `json:"body,omitempty"`
}

// FrameMarker is a marker as drawn.
type FrameMarker struct {
	ID         string        `json:"id"`
	Point      geom.Coord    `json:"point"`
	Origin     *geom.Coord   `json:"origin,omitempty"`
	Z          int           `json:"z"`
	Visible    bool          `json:"visible"`
	OnMap      bool          `json:"on_map"`
	Spiderfied bool          `json:"spiderfied"`
	Status     events.Status `json:"status,omitempty"`
}

// FrameLeg is a leg as drawn.
type FrameLeg struct {
	From   geom.Coord `json:"from"`
	To     geom.Coord `json:"to"`
	Color  string     `json:"color"`
	Weight float64    `json:"weight"`
	Z      int        `json:"z"`
}

// Bounds returns the smallest rectangle holding every visible marker and leg.
func (f Frame) Bounds() geom.Rect {
	var r geom.Rect
	first := true
	add := func(c geom.Coord) {
		if first {
			r = geom.Rect{Min: c, Max: c}
			first = false
			return
		}
		r.ExpandToContainCoord(c)
	}
	for _, m := range f.Markers {
		if m.Visible && m.OnMap {
			add(m.Point)
		}
	}
	for _, l := range f.Legs {
		add(l.From)
		add(l.To)
	}
	return r
}

// Frame snapshots the scene. Markers are listed in file order and legs in
// drawing order.
func (sc *Scene) Frame() Frame {
	view := sc.Surface.View()
	fr := Frame{
		Name:    sc.Name,
		Width:   view.Width,
		Height:  view.Height,
		Zoom:    view.Zoom,
		MapType: sc.Surface.MapType(),
		State:   sc.Engine.State().String(),
	}

	var origins []geom.Coord
	for _, m := range sc.markers {
		fm := FrameMarker{
			ID:      m.ID,
			Point:   view.LatLngToPoint(m.Position()),
			Z:       m.ZIndex(),
			Visible: m.Visible(),
			OnMap:   m.OnMap(),
			Status:  sc.statuses[m],
		}
		if d, ok := sc.Engine.Datum(m); ok {
			o := view.LatLngToPoint(d.OriginalPosition)
			fm.Origin = &o
			fm.Spiderfied = true
			origins = append(origins, o)
		}
		fr.Markers = append(fr.Markers, fm)
	}
	if len(origins) > 0 {
		body := proximity.Centroid(origins)
		fr.Body = &body
	}

	for _, l := range sc.Surface.Legs() {
		fr.Legs = append(fr.Legs, FrameLeg{
			From:   view.LatLngToPoint(l.From),
			To:     view.LatLngToPoint(l.To),
			Color:  l.Style.Color,
			Weight: l.Style.Weight,
			Z:      l.Style.ZIndex,
		})
	}
	return fr
}

// Projection returns the surface's projection whether or not it is ready.
func (sc *Scene) Projection() spider.Projection { return sc.Surface.View() }
