package spider

import (
	"time"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/events"
	"github.com/matzehuels/spiderfy/pkg/proximity"
)

// NeighborsOf returns the active tracked markers within NearbyDistance of m,
// excluding m. Spiderfied markers are measured from their original positions.
// With firstOnly the result holds at most one marker.
func (e *Engine) NeighborsOf(m Marker, firstOnly bool) ([]Marker, error) {
	proj, ok := e.surface.Projection()
	if !ok {
		return nil, ErrProjectionNotReady
	}
	origin := m.Position()
	if en, ok := e.reg.get(m); ok {
		origin = en.origin()
	}
	center := proj.LatLngToPoint(origin)

	var out []Marker
	for _, en := range e.reg.snapshot() {
		if en.marker == m || !active(en.marker) {
			continue
		}
		if proximity.Near(proj.LatLngToPoint(en.origin()), center, e.cfg.NearbyDistance) {
			out = append(out, en.marker)
			if firstOnly {
				break
			}
		}
	}
	return out, nil
}

// WithNeighbors returns every tracked marker that would spiderfy if clicked,
// in tracking order.
func (e *Engine) WithNeighbors() ([]Marker, error) {
	proj, ok := e.surface.Projection()
	if !ok {
		return nil, ErrProjectionNotReady
	}
	entries, data := e.proximityData(proj)
	var out []Marker
	for i, d := range data {
		if d.WillSpiderfy {
			out = append(out, entries[i].marker)
		}
	}
	return out, nil
}

// MarkerStatus pairs a marker with its format status.
type MarkerStatus struct {
	Marker Marker
	Status events.Status
}

// Statuses classifies every tracked marker without publishing anything.
func (e *Engine) Statuses() ([]MarkerStatus, error) {
	entries := e.reg.snapshot()
	out := make([]MarkerStatus, len(entries))

	if e.cfg.BasicFormatEvents {
		for i, en := range entries {
			out[i] = MarkerStatus{Marker: en.marker, Status: events.StatusUnspiderfied}
			if en.datum != nil {
				out[i].Status = events.StatusSpiderfied
			}
		}
		return out, nil
	}

	proj, ok := e.surface.Projection()
	if !ok {
		return nil, ErrProjectionNotReady
	}
	_, data := e.proximityOf(proj, entries)
	for i, en := range entries {
		s := events.StatusUnspiderfiable
		switch {
		case en.datum != nil:
			s = events.StatusSpiderfied
		case data[i].WillSpiderfy:
			s = events.StatusSpiderfiable
		}
		out[i] = MarkerStatus{Marker: en.marker, Status: s}
	}
	return out, nil
}

func (e *Engine) proximityData(proj Projection) ([]*entry, []proximity.Datum) {
	return e.proximityOf(proj, e.reg.snapshot())
}

func (e *Engine) proximityOf(proj Projection, entries []*entry) ([]*entry, []proximity.Datum) {
	cands := make([]proximity.Candidate, len(entries))
	for i, en := range entries {
		cands[i] = proximity.Candidate{
			Point:  proj.LatLngToPoint(en.origin()),
			Active: active(en.marker),
		}
	}
	return entries, proximity.Compute(cands, e.cfg.NearbyDistance)
}

// Format recomputes and publishes every tracked marker's status at once and
// returns how many markers were classified.
func (e *Engine) Format() (int, error) {
	statuses, err := e.Statuses()
	if err != nil {
		return 0, err
	}
	for _, st := range statuses {
		e.bus.PublishFormat(st.Marker, st.Status)
	}
	return len(statuses), nil
}

// RequestFormat schedules a debounced format pass. It reports whether a new
// pass was scheduled rather than merged into a pending one.
func (e *Engine) RequestFormat() bool {
	return e.requestFormat()
}

func (e *Engine) requestFormat() bool {
	if e.closed {
		return false
	}
	return e.format.Request()
}

func (e *Engine) runFormat() {
	if e.closed {
		return
	}
	start := time.Now()
	n, err := e.Format()
	e.hooks.OnFormat(n, time.Since(start), err)
	if err != nil {
		e.log.Error("format pass failed", "err", errors.UserMessage(err))
		return
	}
	e.log.Debug("format", "markers", n)
}

func (e *Engine) projectionReady() bool {
	_, ok := e.surface.Projection()
	return ok
}

// onceIdle runs fn on the next idle notification of the surface.
func (e *Engine) onceIdle(fn func()) {
	var remove func()
	fired := false
	remove = e.surface.Listen(SurfaceIdle, func() {
		if fired {
			return
		}
		fired = true
		if remove != nil {
			remove()
		}
		fn()
	})
}
