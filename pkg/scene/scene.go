package scene

import (
	"fmt"
	"strings"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/events"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

// Event is one recorded engine notification.
type Event struct {
	Channel events.Channel `json:"channel"`
	Markers []string       `json:"markers"`
	Others  []string       `json:"others,omitempty"`
	Status  events.Status  `json:"status,omitempty"`
}

func (e Event) String() string {
	var b strings.Builder
	b.WriteString(string(e.Channel))
	if e.Status != "" {
		fmt.Fprintf(&b, " %s", e.Status)
	}
	fmt.Fprintf(&b, " [%s]", strings.Join(e.Markers, " "))
	if len(e.Others) > 0 {
		fmt.Fprintf(&b, " others=%d", len(e.Others))
	}
	return b.String()
}

// Scene is a live surface, its markers, and the engine managing them.
type Scene struct {
	Name    string
	Surface *Surface
	Engine  *spider.Engine

	markers  []*Marker
	byID     map[string]*Marker
	script   []Step
	statuses map[*Marker]events.Status
	events   []Event
}

// Build creates the surface and markers described by f, tracks every marker,
// and lets the surface settle so initial format statuses are published.
func Build(f File, opts ...spider.Option) (*Scene, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	surface := NewSurface(Mercator{
		Center: f.Center,
		Zoom:   f.Zoom,
		Width:  f.Width,
		Height: f.Height,
	}, f.MapType)
	surface.SetSuppressed(f.Suppressed)

	eng, err := spider.New(surface, f.Spider, opts...)
	if err != nil {
		return nil, err
	}
	sc := &Scene{
		Name:     f.Name,
		Surface:  surface,
		Engine:   eng,
		byID:     make(map[string]*Marker, len(f.Markers)),
		script:   f.Script,
		statuses: make(map[*Marker]events.Status, len(f.Markers)),
	}
	sc.record()

	for _, mf := range f.Markers {
		m := NewMarker(mf.ID, mf.Position())
		m.z = mf.Z
		m.visible = !mf.Hidden
		sc.markers = append(sc.markers, m)
		sc.byID[mf.ID] = m
		eng.Add(m, nil)
	}
	surface.Idle()
	surface.Flush()
	return sc, nil
}

func (sc *Scene) record() {
	bus := sc.Engine.Events()
	bus.OnClick(func(m spider.Marker) {
		sc.events = append(sc.events, Event{Channel: events.ChannelClick, Markers: ids(m)})
	})
	bus.OnSpiderfy(func(cluster, others []spider.Marker) {
		sc.events = append(sc.events, Event{Channel: events.ChannelSpiderfy, Markers: ids(cluster...), Others: ids(others...)})
	})
	bus.OnUnspiderfy(func(cluster, others []spider.Marker) {
		sc.events = append(sc.events, Event{Channel: events.ChannelUnspiderfy, Markers: ids(cluster...), Others: ids(others...)})
	})
	bus.OnFormat(func(m spider.Marker, s events.Status) {
		if mk, ok := m.(*Marker); ok {
			sc.statuses[mk] = s
		}
		sc.events = append(sc.events, Event{Channel: events.ChannelFormat, Markers: ids(m), Status: s})
	})
}

func ids(ms ...spider.Marker) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = MarkerID(m)
	}
	return out
}

// MarkerID returns the id of a scene marker, or "?" for foreign markers.
func MarkerID(m spider.Marker) string {
	if mk, ok := m.(*Marker); ok {
		return mk.ID
	}
	return "?"
}

// Marker returns the marker with the given id.
func (sc *Scene) Marker(id string) (*Marker, error) {
	m, ok := sc.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownMarker, "unknown marker %q", id)
	}
	return m, nil
}

// Markers returns every marker of the scene in file order, tracked or not.
func (sc *Scene) Markers() []*Marker {
	out := make([]*Marker, len(sc.markers))
	copy(out, sc.markers)
	return out
}

// Click clicks the marker with the given id through the engine.
func (sc *Scene) Click(id string) (spider.Outcome, error) {
	m, err := sc.Marker(id)
	if err != nil {
		return spider.OutcomeNoop, err
	}
	return sc.Engine.Click(m)
}

// Status returns the most recent format status published for id.
func (sc *Scene) Status(id string) events.Status {
	m, ok := sc.byID[id]
	if !ok {
		return ""
	}
	return sc.statuses[m]
}

// Events returns the notifications recorded so far.
func (sc *Scene) Events() []Event {
	out := make([]Event, len(sc.events))
	copy(out, sc.events)
	return out
}

// ResetEvents clears the recorded notifications.
func (sc *Scene) ResetEvents() { sc.events = nil }

// Script returns the scene file's script.
func (sc *Scene) Script() []Step {
	out := make([]Step, len(sc.script))
	copy(out, sc.script)
	return out
}

// Run applies the scene's script followed by extra, then flushes deferred work.
func (sc *Scene) Run(extra ...Step) error {
	for _, s := range append(sc.Script(), extra...) {
		if err := sc.Apply(s); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "step %q", s)
		}
	}
	sc.Surface.Flush()
	return nil
}

// Close detaches the engine.
func (sc *Scene) Close() { sc.Engine.Close() }
