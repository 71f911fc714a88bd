package spider_test

import (
	"testing"
	"time"

	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/events"
	"github.com/matzehuels/spiderfy/pkg/scene"
	"github.com/matzehuels/spiderfy/pkg/schedule"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

type statusLog map[string][]events.Status

func (l statusLog) last(id string) events.Status {
	s := l[id]
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

func recordStatuses(e *spider.Engine) statusLog {
	log := statusLog{}
	e.Events().OnFormat(func(m spider.Marker, s events.Status) {
		id := scene.MarkerID(m)
		log[id] = append(log[id], s)
	})
	return log
}

func (h *host) add(id string, pt geom.Coord) *scene.Marker {
	m := scene.NewMarker(id, h.surface.View().PointToLatLng(pt))
	h.markers = append(h.markers, m)
	h.engine.Add(m, nil)
	return m
}

func TestFormatClassifies(t *testing.T) {
	h := newHost(t, spider.DefaultConfig(), true)
	log := recordStatuses(h.engine)
	h.add("a", center)
	h.add("b", center.Plus(geom.Coord{X: 6}))
	h.add("c", geom.Coord{X: 50, Y: 50})
	hidden := h.add("d", center)
	hidden.SetVisible(false)

	for _, id := range []string{"a", "b", "c", "d"} {
		if got := log.last(id); got != events.StatusUnspiderfiable {
			t.Errorf("%s provisional = %s", id, got)
		}
	}

	h.surface.Idle()
	h.surface.Flush()
	want := map[string]events.Status{
		"a": events.StatusSpiderfiable,
		"b": events.StatusSpiderfiable,
		"c": events.StatusUnspiderfiable,
		"d": events.StatusUnspiderfiable,
	}
	for id, w := range want {
		if got := log.last(id); got != w {
			t.Errorf("%s = %s, want %s", id, got, w)
		}
	}

	h.engine.Click(h.markers[0])
	for _, id := range []string{"a", "b"} {
		if got := log.last(id); got != events.StatusSpiderfied {
			t.Errorf("%s after spiderfy = %s", id, got)
		}
	}
	h.surface.Click()
	for _, id := range []string{"a", "b"} {
		if got := log.last(id); got != events.StatusSpiderfiable {
			t.Errorf("%s after unspiderfy = %s", id, got)
		}
	}
}

func TestFormatDebounced(t *testing.T) {
	h := newHost(t, spider.DefaultConfig(), true)
	h.surface.Idle()
	log := recordStatuses(h.engine)
	for _, id := range []string{"a", "b", "c"} {
		h.add(id, center)
	}
	if n := h.surface.Pending(); n != 1 {
		t.Fatalf("pending = %d, want 1", n)
	}
	if h.engine.FormatState() != schedule.Pending {
		t.Fatalf("format state = %s", h.engine.FormatState())
	}

	if n := h.surface.Advance(spider.DefaultFormatDelay - time.Millisecond); n != 0 {
		t.Fatalf("ran %d callbacks before the delay", n)
	}
	h.surface.Advance(time.Millisecond)
	if h.hooks.formats != 1 {
		t.Fatalf("format passes = %d, want 1", h.hooks.formats)
	}
	for _, id := range []string{"a", "b", "c"} {
		if got := log[id]; len(got) != 2 || got[1] != events.StatusSpiderfiable {
			t.Errorf("%s statuses = %v", id, got)
		}
	}
}

func TestFormatWaitsForIdle(t *testing.T) {
	h := newHost(t, spider.DefaultConfig(), true)
	log := recordStatuses(h.engine)
	h.add("a", center)
	h.add("b", center)

	h.surface.Advance(time.Second)
	if h.hooks.formats != 0 {
		t.Fatalf("format ran before the projection was ready")
	}
	if got := h.surface.ListenerCount(spider.SurfaceIdle); got != 1 {
		t.Fatalf("idle listeners = %d, want 1", got)
	}

	h.add("c", geom.Coord{X: 10, Y: 10})
	h.surface.Advance(time.Second)
	if got := h.surface.ListenerCount(spider.SurfaceIdle); got != 1 {
		t.Errorf("idle listeners after second fire = %d, want 1", got)
	}

	h.surface.Idle()
	if h.hooks.formats != 1 {
		t.Fatalf("format passes = %d, want 1", h.hooks.formats)
	}
	if got := h.surface.ListenerCount(spider.SurfaceIdle); got != 0 {
		t.Errorf("idle listener not removed")
	}
	h.surface.Idle()
	if h.hooks.formats != 1 {
		t.Errorf("idle re-ran the format pass")
	}
	if log.last("a") != events.StatusSpiderfiable || log.last("c") != events.StatusUnspiderfiable {
		t.Errorf("statuses = %v", log)
	}
}

func TestBasicFormatEvents(t *testing.T) {
	cfg := spider.DefaultConfig()
	cfg.BasicFormatEvents = true
	h := newHost(t, cfg, true)
	log := recordStatuses(h.engine)
	h.add("a", center)
	h.add("b", center)
	if log.last("a") != events.StatusUnspiderfied {
		t.Fatalf("provisional = %s", log.last("a"))
	}

	h.surface.Flush()
	if h.hooks.formats != 1 {
		t.Fatalf("basic format pass needs no projection, ran %d", h.hooks.formats)
	}
	if got := log["a"]; len(got) != 2 || got[1] != events.StatusUnspiderfied {
		t.Errorf("a = %v", got)
	}

	h.surface.Idle()
	h.engine.Click(h.markers[0])
	if log.last("b") != events.StatusSpiderfied {
		t.Errorf("b spiderfied = %s", log.last("b"))
	}
	h.surface.Click()
	if log.last("b") != events.StatusUnspiderfied {
		t.Errorf("b collapsed = %s", log.last("b"))
	}
}

func TestDraggedMarkerKeepsStatusSilent(t *testing.T) {
	h := newHost(t, spider.DefaultConfig(), false, repeat(center, 2)...)
	log := recordStatuses(h.engine)
	h.engine.Click(h.markers[0])
	h.markers[0].SetPosition(h.surface.View().PointToLatLng(geom.Coord{X: 10, Y: 10}))

	if got := log["a"]; len(got) != 1 || got[0] != events.StatusSpiderfied {
		t.Errorf("dragged marker statuses = %v", got)
	}
	if log.last("b") != events.StatusSpiderfiable {
		t.Errorf("sibling = %s", log.last("b"))
	}

	h.surface.Flush()
	if log.last("a") != events.StatusUnspiderfiable || log.last("b") != events.StatusUnspiderfiable {
		t.Errorf("after drag = %v", log)
	}
}

func TestStatusesDoesNotPublish(t *testing.T) {
	h := newHost(t, spider.DefaultConfig(), false, center, center, geom.Coord{X: 1, Y: 1})
	log := recordStatuses(h.engine)
	sts, err := h.engine.Statuses()
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Errorf("Statuses published %v", log)
	}
	want := []events.Status{events.StatusSpiderfiable, events.StatusSpiderfiable, events.StatusUnspiderfiable}
	for i, st := range sts {
		if st.Status != want[i] {
			t.Errorf("status %d = %s, want %s", i, st.Status, want[i])
		}
	}
}
