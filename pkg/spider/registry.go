package spider

import (
	"slices"

	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/events"
)

// SpiderDatum is what the engine remembers about a marker while it sits at a
// foot point. It exists exactly while the marker belongs to the active cluster.
type SpiderDatum struct {
	OriginalPosition LatLng
	OriginalZIndex   int
	Foot             geom.Coord
	Leg              Leg

	unhighlight []func()
}

// entry is one tracked marker and everything the engine attached to it.
type entry struct {
	marker    Marker
	onClick   events.ClickFunc[Marker]
	listeners []func()
	datum     *SpiderDatum
}

// origin returns the position proximity is measured from.
func (en *entry) origin() LatLng {
	if en.datum != nil {
		return en.datum.OriginalPosition
	}
	return en.marker.Position()
}

func (en *entry) detach() {
	for _, remove := range en.listeners {
		remove()
	}
	en.listeners = nil
}

// registry keeps tracked markers in insertion order with an identity index.
type registry struct {
	entries []*entry
	index   map[Marker]*entry
}

func newRegistry() *registry {
	return &registry{index: make(map[Marker]*entry)}
}

func (r *registry) get(m Marker) (*entry, bool) {
	en, ok := r.index[m]
	return en, ok
}

func (r *registry) add(en *entry) {
	r.entries = append(r.entries, en)
	r.index[en.marker] = en
}

func (r *registry) remove(m Marker) (*entry, bool) {
	en, ok := r.index[m]
	if !ok {
		return nil, false
	}
	delete(r.index, m)
	r.entries = slices.DeleteFunc(r.entries, func(e *entry) bool { return e == en })
	return en, true
}

// reset drops every entry and returns them in insertion order.
func (r *registry) reset() []*entry {
	old := r.entries
	r.entries = nil
	r.index = make(map[Marker]*entry)
	return old
}

// snapshot returns the entries in insertion order. Callers may mutate the
// registry while iterating the result.
func (r *registry) snapshot() []*entry {
	return slices.Clone(r.entries)
}

func (r *registry) len() int { return len(r.entries) }

func (r *registry) markers() []Marker {
	out := make([]Marker, len(r.entries))
	for i, en := range r.entries {
		out[i] = en.marker
	}
	return out
}
