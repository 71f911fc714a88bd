// Package assign matches markers to foot points.
//
// [Greedy] walks the feet in order and gives each one the closest marker that
// is still unmatched. It is a heuristic, not a minimum-cost bipartite
// matching: total leg length is not guaranteed to be minimal. Clusters are
// small and only need to look reasonable, and walking outer feet first (see
// layout.Feet) already avoids most crossings.
package assign

import (
	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/proximity"
)

// Item is a value waiting to be matched, located at Point.
type Item[T any] struct {
	Value T
	Point geom.Coord
}

// Pair is one match: Value moves from From to Foot.
type Pair[T any] struct {
	Foot  geom.Coord
	From  geom.Coord
	Value T
}

// Greedy pairs every foot with the nearest remaining item, in foot order.
//
// When the inputs differ in length only the first min(len(items), len(feet))
// feet are matched. The items slice is not modified.
func Greedy[T any](items []Item[T], feet []geom.Coord) []Pair[T] {
	pool := make([]Item[T], len(items))
	copy(pool, items)

	n := min(len(items), len(feet))
	pairs := make([]Pair[T], 0, n)
	for _, foot := range feet[:n] {
		it := extractNearest(&pool, foot)
		pairs = append(pairs, Pair[T]{Foot: foot, From: it.Point, Value: it.Value})
	}
	return pairs
}

// extractNearest removes and returns the item closest to target.
// Ties go to the earliest item. pool must not be empty.
func extractNearest[T any](pool *[]Item[T], target geom.Coord) Item[T] {
	items := *pool
	best := 0
	bestDist := proximity.DistanceSq(items[0].Point, target)
	for i := 1; i < len(items); i++ {
		if d := proximity.DistanceSq(items[i].Point, target); d < bestDist {
			best, bestDist = i, d
		}
	}
	it := items[best]
	*pool = append(items[:best], items[best+1:]...)
	return it
}
