package spider

import (
	"time"

	"github.com/jbeda/geom"
)

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64 `toml:"lat" json:"lat"`
	Lng float64 `toml:"lng" json:"lng"`
}

// Projection converts between geographic and pixel coordinates.
type Projection interface {
	LatLngToPoint(ll LatLng) geom.Coord
	PointToLatLng(pt geom.Coord) LatLng
}

// MarkerEvent names a notification raised by a marker.
type MarkerEvent int

// Marker events.
const (
	MarkerClick MarkerEvent = iota
	MarkerPositionChanged
	MarkerVisibleChanged
	MarkerMouseOver
	MarkerMouseOut
)

// SurfaceEvent names a notification raised by the host surface.
type SurfaceEvent int

// Surface events.
const (
	SurfaceClick SurfaceEvent = iota
	SurfaceZoomChanged
	SurfaceMapTypeChanged
	// SurfaceIdle fires whenever the surface settles; the first one means the
	// projection is available.
	SurfaceIdle
)

// Marker is a point marker owned by the host.
//
// SetPosition and visibility changes made by anyone, the engine included,
// must raise the matching MarkerEvent synchronously.
type Marker interface {
	Position() LatLng
	SetPosition(ll LatLng)
	ZIndex() int
	SetZIndex(z int)
	Visible() bool
	OnMap() bool
	SetOnMap(on bool)

	// Listen registers fn for ev and returns a function that removes it.
	Listen(ev MarkerEvent, fn func()) (remove func())
}

// LegStyle is the drawing style of a leg.
type LegStyle struct {
	Color  string
	Weight float64
	ZIndex int
}

// Leg is a drawn connector between a marker's original position and its foot.
type Leg interface {
	SetStyle(s LegStyle)
	Remove()
}

// Surface is the host map widget.
type Surface interface {
	// Projection returns the current projection and whether it is ready.
	Projection() (Projection, bool)

	// MapType returns the current base map type, such as MapTypeRoadmap.
	MapType() string

	// DrawLeg attaches a new leg from one position to another.
	DrawLeg(from, to LatLng, style LegStyle) Leg

	// Listen registers fn for ev and returns a function that removes it.
	Listen(ev SurfaceEvent, fn func()) (remove func())

	// After runs fn once on the host's event context, no earlier than d from now.
	After(d time.Duration, fn func())
}

// SpiderfySuppressor is implemented by surfaces that sometimes cannot show a
// fanned-out cluster, such as a street-level view. While SpiderfySuppressed
// reports true every marker click is delivered as a plain click.
type SpiderfySuppressor interface {
	SpiderfySuppressed() bool
}

// active reports whether m takes part in proximity checks.
func active(m Marker) bool {
	return m.OnMap() && m.Visible()
}
