package spider_test

import (
	"slices"
	"testing"

	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/scene"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

func markerIDs(ms []spider.Marker) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = scene.MarkerID(m)
	}
	return out
}

func TestNeighborsOf(t *testing.T) {
	h := newHost(t, spider.DefaultConfig(), false,
		center,
		center.Plus(geom.Coord{X: 5}),
		center.Plus(geom.Coord{X: 15}),
		center.Plus(geom.Coord{X: 40}),
		center,
	)
	h.markers[4].SetVisible(false)

	tests := []struct {
		name      string
		of        int
		firstOnly bool
		want      []string
	}{
		{"all", 0, false, []string{"b", "c"}},
		{"first only", 0, true, []string{"b"}},
		{"chain is not transitive", 2, false, []string{"a", "b"}},
		{"isolated", 3, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.engine.NeighborsOf(h.markers[tt.of], tt.firstOnly)
			if err != nil {
				t.Fatal(err)
			}
			if ids := markerIDs(got); !slices.Equal(ids, tt.want) {
				t.Errorf("NeighborsOf(%s) = %v, want %v", h.markers[tt.of].ID, ids, tt.want)
			}
		})
	}
}

func TestNeighborsOfUsesOriginalPositions(t *testing.T) {
	h := newHost(t, spider.DefaultConfig(), false, repeat(center, 3)...)
	h.engine.Click(h.markers[0])
	if h.engine.State() != spider.StateSpiderfied {
		t.Fatalf("state = %s", h.engine.State())
	}
	got, err := h.engine.NeighborsOf(h.markers[1], false)
	if err != nil {
		t.Fatal(err)
	}
	if ids := markerIDs(got); !slices.Equal(ids, []string{"a", "c"}) {
		t.Errorf("neighbours = %v", ids)
	}
}

func TestWithNeighbors(t *testing.T) {
	h := newHost(t, spider.DefaultConfig(), false,
		center,
		center.Plus(geom.Coord{X: 5}),
		geom.Coord{X: 100, Y: 100},
		geom.Coord{X: 110, Y: 100},
		geom.Coord{X: 700, Y: 500},
	)
	got, err := h.engine.WithNeighbors()
	if err != nil {
		t.Fatal(err)
	}
	if ids := markerIDs(got); !slices.Equal(ids, []string{"a", "b", "c", "d"}) {
		t.Errorf("WithNeighbors = %v", ids)
	}

	h.markers[1].SetVisible(false)
	got, _ = h.engine.WithNeighbors()
	if ids := markerIDs(got); !slices.Equal(ids, []string{"c", "d"}) {
		t.Errorf("after hide = %v", ids)
	}
}
