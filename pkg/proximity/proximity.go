package proximity

import "github.com/jbeda/geom"

// Candidate is one marker as seen by a detection pass.
type Candidate struct {
	// Point is the marker's projected pixel position.
	Point geom.Coord
	// Active is false for markers that are hidden or not on the map.
	// Inactive markers never have neighbours and are never neighbours.
	Active bool
}

// Datum is the per-marker result of a detection pass.
type Datum struct {
	Point        geom.Coord
	WillSpiderfy bool
}

// Compute returns one Datum per candidate, index-aligned with the input.
// WillSpiderfy is true for every active candidate that has at least one other
// active candidate closer than threshold pixels.
func Compute(cands []Candidate, threshold float64) []Datum {
	data := make([]Datum, len(cands))
	for i, c := range cands {
		data[i].Point = c.Point
	}
	pxSq := threshold * threshold

	for i := range cands {
		if !cands[i].Active || data[i].WillSpiderfy {
			continue
		}
		for j := range cands {
			if j == i || !cands[j].Active {
				continue
			}
			// j was already an outer marker and saw every other marker,
			// including i, without finding a neighbour.
			if j < i && !data[j].WillSpiderfy {
				continue
			}
			if DistanceSq(data[i].Point, data[j].Point) < pxSq {
				data[i].WillSpiderfy = true
				data[j].WillSpiderfy = true
				break
			}
		}
	}
	return data
}

// DistanceSq returns the squared Euclidean distance between a and b.
func DistanceSq(a, b geom.Coord) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Near reports whether a and b are strictly closer than threshold.
func Near(a, b geom.Coord, threshold float64) bool {
	return DistanceSq(a, b) < threshold*threshold
}

// Centroid returns the arithmetic mean of pts.
// The centroid of an empty set is the origin.
func Centroid(pts []geom.Coord) geom.Coord {
	if len(pts) == 0 {
		return geom.Coord{}
	}
	var sumX, sumY float64
	for _, p := range pts {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(pts))
	return geom.Coord{X: sumX / n, Y: sumY / n}
}
