package spider

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/assign"
	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/events"
	"github.com/matzehuels/spiderfy/pkg/layout"
	"github.com/matzehuels/spiderfy/pkg/observability"
	"github.com/matzehuels/spiderfy/pkg/proximity"
	"github.com/matzehuels/spiderfy/pkg/schedule"
)

// ErrProjectionNotReady is returned by pixel-space queries made before the
// surface has produced a projection.
var ErrProjectionNotReady = errors.New(errors.ErrCodeProjectionNotReady,
	"must wait for the surface to become idle before querying marker proximity")

// Engine spiderfies overlapping markers on one surface.
type Engine struct {
	surface  Surface
	cfg      Config
	params   layout.Params
	log      *log.Logger
	hooks    observability.SpiderHooks
	regHooks observability.RegistryHooks

	sched       schedule.Scheduler
	formatDelay time.Duration
	format      *schedule.Task

	bus   *events.Bus[Marker]
	reg   *registry
	state State

	surfaceListeners []func()
	closed           bool
}

// New returns an engine bound to surface. cfg is validated first.
func New(surface Surface, cfg Config, opts ...Option) (*Engine, error) {
	if surface == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "surface is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		surface:     surface,
		cfg:         cfg,
		params:      cfg.LayoutParams(),
		log:         log.New(io.Discard),
		hooks:       observability.NoopSpiderHooks{},
		regHooks:    observability.NoopRegistryHooks{},
		sched:       surface,
		formatDelay: DefaultFormatDelay,
		bus:         events.New[Marker](),
		reg:         newRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var taskOpts []schedule.TaskOption
	if !cfg.BasicFormatEvents {
		taskOpts = append(taskOpts, schedule.WhenReady(e.projectionReady, e.onceIdle))
	}
	e.format = schedule.NewTask(e.sched, e.formatDelay, e.runFormat, taskOpts...)

	if !cfg.IgnoreMapClick {
		e.listenSurface(SurfaceClick, e.collapse)
	}
	e.listenSurface(SurfaceMapTypeChanged, e.collapse)
	e.listenSurface(SurfaceZoomChanged, func() {
		e.collapse()
		e.requestFormat()
	})
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Events returns the notification bus.
func (e *Engine) Events() *events.Bus[Marker] { return e.bus }

// FormatState returns the state of the deferred format task.
func (e *Engine) FormatState() schedule.State { return e.format.State() }

// Close detaches the engine from the surface and untracks every marker.
// The engine must not be used afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	for _, remove := range e.surfaceListeners {
		remove()
	}
	e.surfaceListeners = nil
	e.UntrackAll()
}

func (e *Engine) listenSurface(ev SurfaceEvent, fn func()) {
	e.surfaceListeners = append(e.surfaceListeners, e.surface.Listen(ev, fn))
}

// Click handles a click on a tracked marker.
//
// A marker outside the active cluster first collapses it. A marker that was
// spiderfied, a surface that suppresses spiderfying, or a marker with no
// active neighbour yields a plain click. Otherwise the marker's neighbourhood
// is fanned out. Clicks during a transition are ignored.
func (e *Engine) Click(m Marker) (Outcome, error) {
	en, ok := e.reg.get(m)
	if !ok {
		return OutcomeNoop, errors.New(errors.ErrCodeUnknownMarker, "marker is not tracked")
	}
	if e.state.Transitioning() {
		return OutcomeIgnored, nil
	}

	wasSpiderfied := en.datum != nil
	if !wasSpiderfied || !e.cfg.KeepSpiderfied {
		if _, err := e.unspiderfy(nil); err != nil {
			return OutcomeNoop, err
		}
	}
	if wasSpiderfied || e.suppressed() {
		e.emitClick(en)
		return OutcomeClick, nil
	}

	proj, ok := e.surface.Projection()
	if !ok {
		return OutcomeNoop, ErrProjectionNotReady
	}
	cluster, others := e.neighbourhood(proj, m)
	if len(cluster) < 2 {
		e.emitClick(en)
		return OutcomeClick, nil
	}
	if err := e.spiderfy(proj, cluster, others); err != nil {
		return OutcomeNoop, err
	}
	return OutcomeSpiderfied, nil
}

// Unspiderfy collapses the active cluster, if any.
func (e *Engine) Unspiderfy() (Outcome, error) {
	return e.unspiderfy(nil)
}

func (e *Engine) suppressed() bool {
	s, ok := e.surface.(SpiderfySuppressor)
	return ok && s.SpiderfySuppressed()
}

func (e *Engine) emitClick(en *entry) {
	e.hooks.OnClick()
	e.bus.PublishClick(en.marker)
	if en.onClick != nil {
		en.onClick(en.marker)
	}
}

// collapse handles surface events that close the cluster.
func (e *Engine) collapse() {
	if _, err := e.unspiderfy(nil); err != nil {
		e.log.Error("unspiderfy failed", "err", err)
	}
}

// handleClick is the host's marker click listener.
func (e *Engine) handleClick(m Marker) {
	if _, err := e.Click(m); err != nil {
		e.log.Warn("marker click dropped", "err", err)
	}
}

// neighbourhood splits active markers into those near m and the rest.
func (e *Engine) neighbourhood(proj Projection, m Marker) ([]assign.Item[Marker], []Marker) {
	center := proj.LatLngToPoint(m.Position())
	var cluster []assign.Item[Marker]
	var others []Marker
	for _, en := range e.reg.snapshot() {
		if !active(en.marker) {
			continue
		}
		pt := proj.LatLngToPoint(en.marker.Position())
		if proximity.Near(pt, center, e.cfg.NearbyDistance) {
			cluster = append(cluster, assign.Item[Marker]{Value: en.marker, Point: pt})
		} else {
			others = append(others, en.marker)
		}
	}
	return cluster, others
}

func (e *Engine) spiderfy(proj Projection, items []assign.Item[Marker], others []Marker) error {
	start := time.Now()
	if err := e.transition(StateSpiderfying); err != nil {
		return err
	}

	pts := make([]geom.Coord, len(items))
	for i, it := range items {
		pts[i] = it.Point
	}
	feet, mode := layout.Feet(len(items), proximity.Centroid(pts), e.params)
	usual, highlighted := e.cfg.LegColors.For(e.surface.MapType())
	usualStyle := LegStyle{Color: usual, Weight: e.cfg.LegWeight, ZIndex: usualLegZIndex}
	highStyle := LegStyle{Color: highlighted, Weight: e.cfg.LegWeight, ZIndex: highlightedLegZIndex}

	pairs := assign.Greedy(items, feet)
	cluster := make([]Marker, 0, len(pairs))
	for _, p := range pairs {
		m := p.Value
		en, ok := e.reg.get(m)
		if !ok {
			continue
		}
		footLL := proj.PointToLatLng(p.Foot)
		leg := e.surface.DrawLeg(m.Position(), footLL, usualStyle)
		d := &SpiderDatum{
			OriginalPosition: m.Position(),
			OriginalZIndex:   m.ZIndex(),
			Foot:             p.Foot,
			Leg:              leg,
		}
		if usual != highlighted {
			d.unhighlight = []func(){
				m.Listen(MarkerMouseOver, func() { leg.SetStyle(highStyle) }),
				m.Listen(MarkerMouseOut, func() { leg.SetStyle(usualStyle) }),
			}
		}
		en.datum = d
		e.bus.PublishFormat(m, events.StatusSpiderfied)
		m.SetPosition(footLL)
		m.SetZIndex(SpiderfiedZ(p.Foot.Y))
		cluster = append(cluster, m)
	}

	if err := e.transition(StateSpiderfied); err != nil {
		return err
	}
	elapsed := time.Since(start)
	e.log.Debug("spiderfy", "markers", len(cluster), "others", len(others), "mode", mode)
	e.hooks.OnSpiderfy(len(cluster), mode.String(), elapsed)
	e.bus.PublishSpiderfy(cluster, others)
	return nil
}

// unspiderfy collapses the active cluster. keep, if non-nil, stays where it
// is: its datum is dropped without restoring its position.
func (e *Engine) unspiderfy(keep Marker) (Outcome, error) {
	if e.state != StateSpiderfied {
		return OutcomeNoop, nil
	}
	start := time.Now()
	if err := e.transition(StateUnspiderfying); err != nil {
		return OutcomeNoop, err
	}

	status := events.StatusSpiderfiable
	if e.cfg.BasicFormatEvents {
		status = events.StatusUnspiderfied
	}

	var restored, others []Marker
	for _, en := range e.reg.snapshot() {
		if en.datum == nil {
			others = append(others, en.marker)
			continue
		}
		move := en.marker != keep
		e.release(en, move)
		if move {
			e.bus.PublishFormat(en.marker, status)
		}
		restored = append(restored, en.marker)
	}

	if err := e.transition(StateNormal); err != nil {
		return OutcomeNoop, err
	}
	e.log.Debug("unspiderfy", "markers", len(restored), "others", len(others))
	e.hooks.OnUnspiderfy(len(restored), time.Since(start))
	e.bus.PublishUnspiderfy(restored, others)
	return OutcomeUnspiderfied, nil
}

// release removes en's leg and highlight listeners and drops its datum,
// restoring the original position and z-index when move is set.
func (e *Engine) release(en *entry, move bool) {
	d := en.datum
	if d == nil {
		return
	}
	for _, remove := range d.unhighlight {
		remove()
	}
	d.Leg.Remove()
	en.datum = nil
	en.marker.SetZIndex(d.OriginalZIndex)
	if move {
		en.marker.SetPosition(d.OriginalPosition)
	}
}

// markerChanged reacts to a tracked marker moving or changing visibility.
func (e *Engine) markerChanged(m Marker, moved bool) {
	if e.state.Transitioning() {
		return
	}
	en, ok := e.reg.get(m)
	if !ok {
		return
	}
	if en.datum != nil && (moved || !m.Visible()) {
		var keep Marker
		if moved {
			keep = m
		}
		if _, err := e.unspiderfy(keep); err != nil {
			e.log.Error("unspiderfy failed", "err", err)
		}
	}
	e.requestFormat()
}
