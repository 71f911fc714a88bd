package layout

import (
	"math"
	"testing"

	"github.com/jbeda/geom"
)

const eps = 1e-9

func angleOf(p, center geom.Coord) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

func normalize(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func TestCircle(t *testing.T) {
	center := geom.Coord{X: 100, Y: -40}
	for _, n := range []int{1, 2, 3, 5, 8} {
		pts := Circle(n, center, 23, math.Pi/6)
		if len(pts) != n {
			t.Fatalf("n=%d: len = %d", n, len(pts))
		}

		wantRadius := 23 * float64(2+n) / (2 * math.Pi)
		for i, p := range pts {
			if r := p.DistanceFrom(center); math.Abs(r-wantRadius) > eps {
				t.Errorf("n=%d: radius[%d] = %v, want %v", n, i, r, wantRadius)
			}
		}

		if math.Abs(normalize(angleOf(pts[0], center))-math.Pi/6) > eps {
			t.Errorf("n=%d: first angle = %v, want π/6", n, angleOf(pts[0], center))
		}

		step := 2 * math.Pi / float64(n)
		for i := 1; i < n; i++ {
			sep := normalize(angleOf(pts[i], center) - angleOf(pts[i-1], center))
			if math.Abs(sep-step) > 1e-9 {
				t.Errorf("n=%d: separation[%d] = %v, want %v", n, i, sep, step)
			}
		}
	}
}

func TestCircleThreeIs120Degrees(t *testing.T) {
	center := geom.Coord{X: 0, Y: 0}
	pts := Circle(3, center, 23, math.Pi/6)
	for i := range pts {
		j := (i + 1) % 3
		sep := normalize(angleOf(pts[j], center) - angleOf(pts[i], center))
		if math.Abs(sep-2*math.Pi/3) > 1e-9 {
			t.Errorf("separation %d->%d = %v rad, want 2π/3", i, j, sep)
		}
	}
}

func TestSpiral(t *testing.T) {
	center := geom.Coord{X: 10, Y: 10}
	pts := Spiral(30, center, 26, 11, 4)
	if len(pts) != 30 {
		t.Fatalf("len = %d, want 30", len(pts))
	}

	if r := pts[0].DistanceFrom(center); math.Abs(r-11) > eps {
		t.Errorf("first leg length = %v, want 11", r)
	}

	prev := 0.0
	for i, p := range pts {
		r := p.DistanceFrom(center)
		if r <= prev {
			t.Fatalf("leg length not increasing at %d: %v <= %v", i, r, prev)
		}
		prev = r
	}
}

func TestEmptyCounts(t *testing.T) {
	if pts := Circle(0, geom.Coord{}, 23, 0); pts != nil {
		t.Errorf("Circle(0) = %v, want nil", pts)
	}
	if pts := Spiral(-1, geom.Coord{}, 26, 11, 4); pts != nil {
		t.Errorf("Spiral(-1) = %v, want nil", pts)
	}
}

func TestModeFor(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		count int
		want  Mode
	}{
		{2, ModeCircle},
		{8, ModeCircle},
		{9, ModeSpiral},
		{50, ModeSpiral},
	}
	for _, tt := range tests {
		if got := p.ModeFor(tt.count); got != tt.want {
			t.Errorf("ModeFor(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestFeetReversesSpiral(t *testing.T) {
	p := DefaultParams()
	center := geom.Coord{X: 0, Y: 0}

	feet, mode := Feet(10, center, p)
	if mode != ModeSpiral {
		t.Fatalf("mode = %v, want spiral", mode)
	}
	spiral := Spiral(10, center, p.SpiralFootSeparation, p.SpiralLengthStart, p.SpiralLengthFactor)
	for i := range feet {
		if feet[i] != spiral[len(spiral)-1-i] {
			t.Fatalf("feet[%d] = %v, want %v", i, feet[i], spiral[len(spiral)-1-i])
		}
	}
	if feet[0].DistanceFrom(center) <= feet[len(feet)-1].DistanceFrom(center) {
		t.Error("outermost foot should come first")
	}

	feet, mode = Feet(4, center, p)
	if mode != ModeCircle || len(feet) != 4 {
		t.Errorf("Feet(4) = %d points in %v mode", len(feet), mode)
	}
}

func TestModeString(t *testing.T) {
	if ModeCircle.String() != "circle" || ModeSpiral.String() != "spiral" || Mode(9).String() != "unknown" {
		t.Error("unexpected Mode.String output")
	}
}
