package scene

import "github.com/matzehuels/spiderfy/pkg/spider"

// Marker is a headless marker. Setters raise the matching notification
// synchronously.
type Marker struct {
	ID string

	pos     spider.LatLng
	z       int
	visible bool
	onMap   bool

	listeners listeners[spider.MarkerEvent]
}

// NewMarker returns a visible marker at pos that is not on a map yet.
func NewMarker(id string, pos spider.LatLng) *Marker {
	return &Marker{ID: id, pos: pos, visible: true}
}

func (m *Marker) Position() spider.LatLng { return m.pos }

func (m *Marker) SetPosition(ll spider.LatLng) {
	m.pos = ll
	m.listeners.fire(spider.MarkerPositionChanged)
}

func (m *Marker) ZIndex() int     { return m.z }
func (m *Marker) SetZIndex(z int) { m.z = z }
func (m *Marker) Visible() bool   { return m.visible }
func (m *Marker) OnMap() bool     { return m.onMap }
func (m *Marker) SetOnMap(on bool) {
	m.onMap = on
}

// SetVisible shows or hides the marker.
func (m *Marker) SetVisible(v bool) {
	if v == m.visible {
		return
	}
	m.visible = v
	m.listeners.fire(spider.MarkerVisibleChanged)
}

func (m *Marker) Listen(ev spider.MarkerEvent, fn func()) func() {
	return m.listeners.add(ev, fn)
}

// Click raises a click on the marker, as a user would.
func (m *Marker) Click() { m.listeners.fire(spider.MarkerClick) }

// MouseOver raises a pointer-enter notification.
func (m *Marker) MouseOver() { m.listeners.fire(spider.MarkerMouseOver) }

// MouseOut raises a pointer-leave notification.
func (m *Marker) MouseOut() { m.listeners.fire(spider.MarkerMouseOut) }

// ListenerCount returns the number of listeners registered for ev.
func (m *Marker) ListenerCount(ev spider.MarkerEvent) int {
	return m.listeners.count(ev)
}

func (m *Marker) String() string { return m.ID }
