package layout

import (
	"math"
	"slices"

	"github.com/jbeda/geom"
)

// spiralDrift nudges the spiral angle a little more at every step so that
// late points do not bunch up where the leg-length increment flattens out.
const spiralDrift = 0.0005

// Mode selects the foot arrangement.
type Mode int

const (
	// ModeCircle places feet on a ring.
	ModeCircle Mode = iota
	// ModeSpiral places feet along a growing spiral.
	ModeSpiral
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCircle:
		return "circle"
	case ModeSpiral:
		return "spiral"
	default:
		return "unknown"
	}
}

// Params holds the geometry knobs of both arrangements.
type Params struct {
	CircleSpiralSwitchover int
	CircleFootSeparation   float64
	CircleStartAngle       float64
	SpiralFootSeparation   float64
	SpiralLengthStart      float64
	SpiralLengthFactor     float64
}

// DefaultParams returns the stock arrangement settings.
func DefaultParams() Params {
	return Params{
		CircleSpiralSwitchover: 9,
		CircleFootSeparation:   23,
		CircleStartAngle:       math.Pi / 6,
		SpiralFootSeparation:   26,
		SpiralLengthStart:      11,
		SpiralLengthFactor:     4,
	}
}

// ModeFor returns the arrangement used for a cluster of count markers.
func (p Params) ModeFor(count int) Mode {
	if count >= p.CircleSpiralSwitchover {
		return ModeSpiral
	}
	return ModeCircle
}

// Feet returns count foot points around center in matching order, along with
// the mode that produced them.
func Feet(count int, center geom.Coord, p Params) ([]geom.Coord, Mode) {
	mode := p.ModeFor(count)
	if mode == ModeSpiral {
		pts := Spiral(count, center, p.SpiralFootSeparation, p.SpiralLengthStart, p.SpiralLengthFactor)
		slices.Reverse(pts)
		return pts, mode
	}
	return Circle(count, center, p.CircleFootSeparation, p.CircleStartAngle), mode
}

// Circle returns count points equidistant from center.
//
// The ring's circumference is separation*(2+count) and consecutive points are
// 2π/count radians apart, starting at startAngle.
func Circle(count int, center geom.Coord, separation, startAngle float64) []geom.Coord {
	if count <= 0 {
		return nil
	}
	circumference := separation * float64(2+count)
	radius := circumference / (2 * math.Pi)
	step := 2 * math.Pi / float64(count)

	pts := make([]geom.Coord, count)
	for i := range pts {
		angle := startAngle + float64(i)*step
		pts[i] = geom.Coord{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return pts
}

// Spiral returns count points along a spiral around center, innermost first.
//
// The leg length starts at lengthStart and strictly increases with every
// point; the angle advances by roughly separation/legLength so that
// consecutive feet stay about separation pixels apart along the curve.
func Spiral(count int, center geom.Coord, separation, lengthStart, lengthFactor float64) []geom.Coord {
	if count <= 0 {
		return nil
	}
	legLength := lengthStart
	angle := 0.0

	pts := make([]geom.Coord, count)
	for i := range pts {
		angle += separation/legLength + float64(i)*spiralDrift
		pts[i] = geom.Coord{
			X: center.X + legLength*math.Cos(angle),
			Y: center.Y + legLength*math.Sin(angle),
		}
		legLength += 2 * math.Pi * lengthFactor / angle
	}
	return pts
}
