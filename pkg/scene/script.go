package scene

import (
	"fmt"
	"time"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

// Script actions.
const (
	ActionClick    = "click"
	ActionMapClick = "map_click"
	ActionZoom     = "zoom"
	ActionMapType  = "map_type"
	ActionHide     = "hide"
	ActionShow     = "show"
	ActionMove     = "move"
	ActionHover    = "hover"
	ActionUnhover  = "unhover"
	ActionRemove   = "remove"
	ActionIdle     = "idle"
	ActionSuppress = "suppress"
	ActionRelease  = "release"
	ActionAdvance  = "advance"
	ActionFlush    = "flush"
	ActionUnspider = "unspiderfy"
)

// targeted lists actions that name a marker.
var targeted = map[string]bool{
	ActionClick:   true,
	ActionHide:    true,
	ActionShow:    true,
	ActionMove:    true,
	ActionHover:   true,
	ActionUnhover: true,
	ActionRemove:  true,
}

var known = map[string]bool{
	ActionClick: true, ActionMapClick: true, ActionZoom: true, ActionMapType: true,
	ActionHide: true, ActionShow: true, ActionMove: true, ActionHover: true,
	ActionUnhover: true, ActionRemove: true, ActionIdle: true, ActionSuppress: true,
	ActionRelease: true, ActionAdvance: true, ActionFlush: true, ActionUnspider: true,
}

// Step is one scripted user or host action.
type Step struct {
	Action  string  `toml:"action" json:"action"`
	Target  string  `toml:"target,omitempty" json:"target,omitempty"`
	Lat     float64 `toml:"lat,omitempty" json:"lat,omitempty"`
	Lng     float64 `toml:"lng,omitempty" json:"lng,omitempty"`
	Zoom    int     `toml:"zoom,omitempty" json:"zoom,omitempty"`
	MapType string  `toml:"map_type,omitempty" json:"map_type,omitempty"`
	// Millis is the clock advance of an "advance" step.
	Millis  int     `toml:"millis,omitempty" json:"millis,omitempty"`
}

// Click returns a step that clicks the marker with the given id.
func Click(id string) Step { return Step{Action: ActionClick, Target: id} }

func (s Step) String() string {
	switch {
	case s.Action == ActionMove:
		return fmt.Sprintf("move %s to %.6f,%.6f", s.Target, s.Lat, s.Lng)
	case s.Action == ActionZoom:
		return fmt.Sprintf("zoom %d", s.Zoom)
	case s.Action == ActionMapType:
		return "map_type " + s.MapType
	case s.Action == ActionAdvance:
		return fmt.Sprintf("advance %dms", s.Millis)
	case s.Target != "":
		return s.Action + " " + s.Target
	}
	return s.Action
}

func (s Step) validate(ids map[string]bool) error {
	if !known[s.Action] {
		return errors.New(errors.ErrCodeInvalidScene, "unknown action %q", s.Action)
	}
	if targeted[s.Action] && !ids[s.Target] {
		return errors.New(errors.ErrCodeUnknownMarker, "%s: unknown marker %q", s.Action, s.Target)
	}
	switch s.Action {
	case ActionMove:
		return errors.ValidateLatLng(s.Lat, s.Lng)
	case ActionZoom:
		if s.Zoom < 0 || s.Zoom > 22 {
			return errors.New(errors.ErrCodeInvalidScene, "zoom %d out of range [0, 22]", s.Zoom)
		}
	case ActionMapType:
		if s.MapType == "" {
			return errors.New(errors.ErrCodeInvalidScene, "map_type step needs a map type")
		}
	case ActionAdvance:
		if s.Millis < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "advance must be non-negative, got %d", s.Millis)
		}
	}
	return nil
}

// Apply performs one step. Marker clicks go through the engine so the
// outcome is known; everything else is raised as a host notification.
func (sc *Scene) Apply(s Step) error {
	var m *Marker
	if targeted[s.Action] {
		var err error
		if m, err = sc.Marker(s.Target); err != nil {
			return err
		}
	}
	switch s.Action {
	case ActionClick:
		_, err := sc.Click(s.Target)
		return err
	case ActionMapClick:
		sc.Surface.Click()
	case ActionZoom:
		sc.Surface.SetZoom(s.Zoom)
	case ActionMapType:
		sc.Surface.SetMapType(s.MapType)
	case ActionHide:
		m.SetVisible(false)
	case ActionShow:
		m.SetVisible(true)
	case ActionMove:
		m.SetPosition(spider.LatLng{Lat: s.Lat, Lng: s.Lng})
	case ActionHover:
		m.MouseOver()
	case ActionUnhover:
		m.MouseOut()
	case ActionRemove:
		sc.Engine.Remove(m)
	case ActionIdle:
		sc.Surface.Idle()
	case ActionSuppress:
		sc.Surface.SetSuppressed(true)
	case ActionRelease:
		sc.Surface.SetSuppressed(false)
	case ActionAdvance:
		sc.Surface.Advance(time.Duration(s.Millis) * time.Millisecond)
	case ActionFlush:
		sc.Surface.Flush()
	case ActionUnspider:
		_, err := sc.Engine.Unspiderfy()
		return err
	default:
		return errors.New(errors.ErrCodeInvalidScene, "unknown action %q", s.Action)
	}
	return nil
}
