package layout_test

import (
	"fmt"

	"github.com/jbeda/geom"

	"github.com/matzehuels/spiderfy/pkg/layout"
)

func ExampleFeet() {
	p := layout.DefaultParams()
	center := geom.Coord{X: 0, Y: 0}

	for _, n := range []int{3, 12} {
		feet, mode := layout.Feet(n, center, p)
		fmt.Printf("%d markers: %s, first foot %.1fpx from center\n",
			n, mode, feet[0].DistanceFrom(center))
	}
	// Output:
	// 3 markers: circle, first foot 18.3px from center
	// 12 markers: spiral, first foot 63.0px from center
}
