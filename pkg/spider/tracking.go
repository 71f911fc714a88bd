package spider

import "github.com/matzehuels/spiderfy/pkg/events"

// Track starts managing m. onSpiderClick, if non-nil, runs after the click
// channel whenever m receives a plain click. Tracking a marker twice is a
// no-op that reports false.
func (e *Engine) Track(m Marker, onSpiderClick events.ClickFunc[Marker]) bool {
	if _, ok := e.reg.get(m); ok {
		return false
	}
	en := &entry{marker: m, onClick: onSpiderClick}
	en.listeners = append(en.listeners, m.Listen(MarkerClick, func() { e.handleClick(m) }))
	if !e.cfg.MarkersWontHide {
		en.listeners = append(en.listeners, m.Listen(MarkerVisibleChanged, func() { e.markerChanged(m, false) }))
	}
	if !e.cfg.MarkersWontMove {
		en.listeners = append(en.listeners, m.Listen(MarkerPositionChanged, func() { e.markerChanged(m, true) }))
	}
	e.reg.add(en)
	e.regHooks.OnTrack(e.reg.len())

	status := events.StatusUnspiderfiable
	if e.cfg.BasicFormatEvents {
		status = events.StatusUnspiderfied
	}
	e.bus.PublishFormat(m, status)
	e.requestFormat()
	return true
}

// Untrack stops managing m, collapsing the cluster first if m is part of it.
// It reports false if m was not tracked.
func (e *Engine) Untrack(m Marker) bool {
	en, ok := e.reg.get(m)
	if !ok {
		return false
	}
	e.drop(en)
	e.reg.remove(m)
	e.regHooks.OnUntrack(e.reg.len())
	e.requestFormat()
	return true
}

// UntrackAll collapses the cluster and stops managing every marker.
func (e *Engine) UntrackAll() {
	e.collapse()
	for _, en := range e.reg.reset() {
		e.drop(en)
	}
	e.regHooks.OnUntrack(0)
}

// drop detaches en, restoring it first if it is still spiderfied.
func (e *Engine) drop(en *entry) {
	if en.datum != nil {
		if e.state == StateSpiderfied {
			e.collapse()
		} else {
			// Removed from inside a transition handler.
			e.release(en, true)
		}
	}
	en.detach()
}

// Add puts m on the map and tracks it.
func (e *Engine) Add(m Marker, onSpiderClick events.ClickFunc[Marker]) bool {
	m.SetOnMap(true)
	return e.Track(m, onSpiderClick)
}

// Remove untracks m and takes it off the map.
func (e *Engine) Remove(m Marker) bool {
	ok := e.Untrack(m)
	m.SetOnMap(false)
	return ok
}

// RemoveAll untracks every marker and takes them all off the map.
func (e *Engine) RemoveAll() {
	markers := e.reg.markers()
	e.UntrackAll()
	for _, m := range markers {
		m.SetOnMap(false)
	}
}

// Markers returns the tracked markers in tracking order.
func (e *Engine) Markers() []Marker {
	return e.reg.markers()
}

// Tracked reports whether m is tracked.
func (e *Engine) Tracked(m Marker) bool {
	_, ok := e.reg.get(m)
	return ok
}

// Datum returns a copy of m's spider datum. ok is false unless m is part of
// the active cluster.
func (e *Engine) Datum(m Marker) (SpiderDatum, bool) {
	en, ok := e.reg.get(m)
	if !ok || en.datum == nil {
		return SpiderDatum{}, false
	}
	d := *en.datum
	d.unhighlight = nil
	return d, true
}

// Cluster returns the markers of the active cluster in tracking order.
func (e *Engine) Cluster() []Marker {
	var out []Marker
	for _, en := range e.reg.entries {
		if en.datum != nil {
			out = append(out, en.marker)
		}
	}
	return out
}
