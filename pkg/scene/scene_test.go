package scene

import (
	"math"
	"testing"

	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/events"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

func mustBuild(t *testing.T, path string) *Scene {
	t.Helper()
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sc, err := Build(f)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return sc
}

func TestBuildSettles(t *testing.T) {
	sc := mustBuild(t, "testdata/plaza.toml")
	if !sc.Surface.Ready() || sc.Surface.Pending() != 0 {
		t.Fatal("scene did not settle")
	}
	want := map[string]events.Status{
		"cafe":   events.StatusSpiderfiable,
		"bakery": events.StatusSpiderfiable,
		"kiosk":  events.StatusSpiderfiable,
		"museum": events.StatusUnspiderfiable,
	}
	for id, w := range want {
		if got := sc.Status(id); got != w {
			t.Errorf("%s = %s, want %s", id, got, w)
		}
	}
	k, _ := sc.Marker("kiosk")
	if k.ZIndex() != 5 || !k.OnMap() {
		t.Errorf("kiosk z=%d onMap=%v", k.ZIndex(), k.OnMap())
	}
}

func TestRunScript(t *testing.T) {
	sc := mustBuild(t, "testdata/plaza.toml")
	sc.ResetEvents()
	if err := sc.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sc.Engine.State() != spider.StateSpiderfied {
		t.Fatalf("state = %s", sc.Engine.State())
	}

	fr := sc.Frame()
	if fr.State != "spiderfied" || len(fr.Legs) != 3 || fr.Body == nil {
		t.Fatalf("frame = %+v", fr)
	}
	spiderfied := 0
	for _, m := range fr.Markers {
		if m.Spiderfied {
			spiderfied++
			if m.Origin == nil {
				t.Errorf("%s has no origin", m.ID)
			}
			if m.Status != events.StatusSpiderfied {
				t.Errorf("%s status = %s", m.ID, m.Status)
			}
		}
	}
	if spiderfied != 3 {
		t.Errorf("spiderfied markers = %d", spiderfied)
	}

	var chans []events.Channel
	for _, ev := range sc.Events() {
		if ev.Channel != events.ChannelFormat {
			chans = append(chans, ev.Channel)
		}
	}
	if len(chans) != 1 || chans[0] != events.ChannelSpiderfy {
		t.Errorf("events = %v", chans)
	}
}

func TestRunExtraSteps(t *testing.T) {
	sc := mustBuild(t, "testdata/plaza.json")
	if err := sc.Run(Click("cafe")); err != nil {
		t.Fatal(err)
	}
	if sc.Engine.State() != spider.StateSpiderfied {
		t.Errorf("state = %s", sc.Engine.State())
	}
	if got := sc.Status("bakery"); got != events.StatusSpiderfied {
		t.Errorf("bakery = %s", got)
	}
	if err := sc.Run(); err != nil {
		t.Fatal(err)
	}
	if sc.Engine.State() != spider.StateNormal || sc.Status("bakery") != events.StatusUnspiderfied {
		t.Errorf("after map click: %s %s", sc.Engine.State(), sc.Status("bakery"))
	}
	if err := sc.Run(Click("ghost")); !errors.Is(err, errors.ErrCodeUnknownMarker) {
		t.Errorf("ghost click = %v", err)
	}
}

func TestApplyHostSteps(t *testing.T) {
	sc := mustBuild(t, "testdata/plaza.toml")
	steps := []Step{
		Click("cafe"),
		{Action: ActionHover, Target: "cafe"},
	}
	for _, s := range steps {
		if err := sc.Apply(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	cafe, _ := sc.Marker("cafe")
	d, ok := sc.Engine.Datum(cafe)
	if !ok {
		t.Fatal("cafe not spiderfied")
	}
	if c := d.Leg.(*Leg).Style.Color; c != "#f00" {
		t.Errorf("hovered leg = %s", c)
	}

	if err := sc.Apply(Step{Action: ActionZoom, Zoom: 17}); err != nil {
		t.Fatal(err)
	}
	if sc.Engine.State() != spider.StateNormal || sc.Surface.View().Zoom != 17 {
		t.Errorf("zoom step: %s zoom=%d", sc.Engine.State(), sc.Surface.View().Zoom)
	}

	sc.Apply(Step{Action: ActionSuppress})
	if out, _ := sc.Click("cafe"); out != spider.OutcomeClick {
		t.Errorf("suppressed click = %s", out)
	}
	sc.Apply(Step{Action: ActionRelease})
	sc.Apply(Step{Action: ActionRemove, Target: "bakery"})
	b, _ := sc.Marker("bakery")
	if b.OnMap() || sc.Engine.Tracked(b) {
		t.Error("remove step left bakery tracked")
	}
}

func TestMercatorRoundTrip(t *testing.T) {
	m := Mercator{Center: spider.LatLng{Lat: 48.8584, Lng: 2.2945}, Zoom: 15, Width: 800, Height: 600}
	c := m.LatLngToPoint(m.Center)
	if math.Abs(c.X-400) > 1e-6 || math.Abs(c.Y-300) > 1e-6 {
		t.Errorf("center maps to %v", c)
	}
	for _, pt := range []geom.Coord{{X: 0, Y: 0}, {X: 123.5, Y: 456.25}, {X: 800, Y: 600}} {
		back := m.LatLngToPoint(m.PointToLatLng(pt))
		if math.Abs(back.X-pt.X) > 1e-6 || math.Abs(back.Y-pt.Y) > 1e-6 {
			t.Errorf("round trip %v -> %v", pt, back)
		}
	}
	zoomed := m
	zoomed.Zoom++
	ll := m.PointToLatLng(geom.Coord{X: 500, Y: 300})
	if got := zoomed.LatLngToPoint(ll).X; math.Abs(got-600) > 1e-6 {
		t.Errorf("zoom doubles offsets: x = %v", got)
	}
}

func TestListenerRemovalDuringDispatch(t *testing.T) {
	var l listeners[int]
	calls := 0
	var remove func()
	remove = l.add(1, func() {
		calls++
		remove()
	})
	l.add(1, func() { calls++ })
	l.fire(1)
	l.fire(1)
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if l.count(1) != 1 {
		t.Errorf("count = %d", l.count(1))
	}
}

func TestFrameBounds(t *testing.T) {
	fr := Frame{
		Markers: []FrameMarker{
			{Point: geom.Coord{X: 10, Y: 20}, Visible: true, OnMap: true},
			{Point: geom.Coord{X: 500, Y: 500}, Visible: false, OnMap: true},
		},
		Legs: []FrameLeg{{From: geom.Coord{X: 10, Y: 20}, To: geom.Coord{X: 40, Y: 5}}},
	}
	b := fr.Bounds()
	if b.Min != (geom.Coord{X: 10, Y: 5}) || b.Max != (geom.Coord{X: 40, Y: 20}) {
		t.Errorf("bounds = %+v", b)
	}
}
