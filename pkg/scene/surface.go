package scene

import (
	"slices"
	"time"

	"github.com/matzehuels/spiderfy/pkg/schedule"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

// Leg is a drawn leg. Removed legs are kept by nobody.
type Leg struct {
	From, To spider.LatLng
	Style    spider.LegStyle

	surface *Surface
}

// SetStyle restyles the leg.
func (l *Leg) SetStyle(s spider.LegStyle) { l.Style = s }

// Remove detaches the leg from its surface.
func (l *Leg) Remove() {
	if l.surface == nil {
		return
	}
	s := l.surface
	s.legs = slices.DeleteFunc(s.legs, func(o *Leg) bool { return o == l })
	l.surface = nil
}

// Attached reports whether the leg is still drawn.
func (l *Leg) Attached() bool { return l.surface != nil }

// Surface is a headless map viewport.
type Surface struct {
	view       Mercator
	mapType    string
	ready      bool
	suppressed bool

	clock     *schedule.Manual
	listeners listeners[spider.SurfaceEvent]
	legs      []*Leg
}

// NewSurface returns a surface that has not produced a projection yet.
// Call Idle to make it ready.
func NewSurface(view Mercator, mapType string) *Surface {
	if mapType == "" {
		mapType = spider.MapTypeRoadmap
	}
	return &Surface{view: view, mapType: mapType, clock: schedule.NewManual()}
}

// Projection implements spider.Surface.
func (s *Surface) Projection() (spider.Projection, bool) {
	if !s.ready {
		return nil, false
	}
	return s.view, true
}

// MapType implements spider.Surface.
func (s *Surface) MapType() string { return s.mapType }

// DrawLeg implements spider.Surface.
func (s *Surface) DrawLeg(from, to spider.LatLng, style spider.LegStyle) spider.Leg {
	l := &Leg{From: from, To: to, Style: style, surface: s}
	s.legs = append(s.legs, l)
	return l
}

// Listen implements spider.Surface.
func (s *Surface) Listen(ev spider.SurfaceEvent, fn func()) func() {
	return s.listeners.add(ev, fn)
}

// After implements spider.Surface on the surface's manual clock.
func (s *Surface) After(d time.Duration, fn func()) { s.clock.After(d, fn) }

// SpiderfySuppressed implements spider.SpiderfySuppressor.
func (s *Surface) SpiderfySuppressed() bool { return s.suppressed }

// SetSuppressed switches the surface in and out of a mode that cannot show
// fanned-out clusters.
func (s *Surface) SetSuppressed(on bool) { s.suppressed = on }

// View returns the current viewport.
func (s *Surface) View() Mercator { return s.view }

// Ready reports whether the surface has gone idle at least once.
func (s *Surface) Ready() bool { return s.ready }

// Legs returns the drawn legs in drawing order.
func (s *Surface) Legs() []*Leg { return slices.Clone(s.legs) }

// ListenerCount returns the number of listeners registered for ev.
func (s *Surface) ListenerCount(ev spider.SurfaceEvent) int {
	return s.listeners.count(ev)
}

// Idle marks the projection ready and raises the idle notification.
func (s *Surface) Idle() {
	s.ready = true
	s.listeners.fire(spider.SurfaceIdle)
}

// Click raises a background click.
func (s *Surface) Click() { s.listeners.fire(spider.SurfaceClick) }

// SetZoom changes the zoom level and raises the zoom notification.
func (s *Surface) SetZoom(z int) {
	if z == s.view.Zoom {
		return
	}
	s.view.Zoom = z
	s.listeners.fire(spider.SurfaceZoomChanged)
}

// SetMapType changes the base map type and raises the map-type notification.
func (s *Surface) SetMapType(t string) {
	if t == s.mapType {
		return
	}
	s.mapType = t
	s.listeners.fire(spider.SurfaceMapTypeChanged)
}

// Advance moves the surface clock forward by d, running due callbacks.
func (s *Surface) Advance(d time.Duration) int { return s.clock.Advance(d) }

// Flush runs every queued callback, including ones queued while flushing.
func (s *Surface) Flush() int { return s.clock.Flush() }

// Pending returns the number of queued callbacks.
func (s *Surface) Pending() int { return s.clock.Pending() }
