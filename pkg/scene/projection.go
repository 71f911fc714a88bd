package scene

import (
	"math"

	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/spider"
)

// tileSize is the pixel width of the world at zoom 0.
const tileSize = 256

// Mercator is a Web Mercator projection onto a viewport whose top-left
// corner is pixel (0, 0).
type Mercator struct {
	Center spider.LatLng
	Zoom   int
	Width  float64
	Height float64
}

func (m Mercator) scale() float64 {
	return tileSize * math.Exp2(float64(m.Zoom))
}

func (m Mercator) world(ll spider.LatLng) geom.Coord {
	s := m.scale()
	sin := math.Sin(ll.Lat * math.Pi / 180)
	sin = math.Min(math.Max(sin, -0.9999), 0.9999)
	return geom.Coord{
		X: (ll.Lng + 180) / 360 * s,
		Y: (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * s,
	}
}

func (m Mercator) origin() geom.Coord {
	c := m.world(m.Center)
	return geom.Coord{X: c.X - m.Width/2, Y: c.Y - m.Height/2}
}

// LatLngToPoint returns the viewport pixel of ll.
func (m Mercator) LatLngToPoint(ll spider.LatLng) geom.Coord {
	return m.world(ll).Minus(m.origin())
}

// PointToLatLng returns the position under viewport pixel pt.
func (m Mercator) PointToLatLng(pt geom.Coord) spider.LatLng {
	s := m.scale()
	w := pt.Plus(m.origin())
	n := math.Pi - 2*math.Pi*w.Y/s
	return spider.LatLng{
		Lat: 180 / math.Pi * math.Atan(math.Sinh(n)),
		Lng: w.X/s*360 - 180,
	}
}
