package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jbeda/geom"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderfy/pkg/layout"
	"github.com/matzehuels/spiderfy/pkg/scene"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

// footRow is one generated foot relative to the cluster body.
type footRow struct {
	Index  int
	Point  geom.Coord
	Radius float64
	Angle  float64 // degrees, clockwise from +x in screen space
	Z      int
}

// layoutCommand creates the layout command for tabulating generated feet.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		count  int
		from   string
		params = spider.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Tabulate the feet generated for a cluster of N markers",
		Long: `Tabulate the feet generated for a cluster of N markers.

Feet are listed in the order they are handed to markers: the circle from its
start angle, or the spiral from its outermost point inward. Settings default
to the stock configuration; --from takes them from a scene file's [spider]
table instead, and explicit flags override either.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := params
			if from != "" {
				f, err := scene.Load(from)
				if err != nil {
					return err
				}
				cfg = f.Spider
				overrideLayoutFlags(cmd, &cfg, params)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}
			feet, mode := footRows(count, cfg.LayoutParams())
			loggerFromContext(cmd.Context()).Debugf("Generated %d feet (%s)", len(feet), mode)
			printLayout(cmd.OutOrStdout(), mode, feet)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 2, "number of markers in the cluster")
	cmd.Flags().StringVar(&from, "from", "", "scene file whose [spider] settings to use")
	cmd.Flags().IntVar(&params.CircleSpiralSwitchover, "switchover", params.CircleSpiralSwitchover, "cluster size at which the spiral replaces the circle")
	cmd.Flags().Float64Var(&params.CircleFootSeparation, "circle-separation", params.CircleFootSeparation, "arc length between circle feet")
	cmd.Flags().Float64Var(&params.CircleStartAngle, "circle-start", params.CircleStartAngle, "circle start angle in radians")
	cmd.Flags().Float64Var(&params.SpiralFootSeparation, "spiral-separation", params.SpiralFootSeparation, "distance between spiral feet")
	cmd.Flags().Float64Var(&params.SpiralLengthStart, "spiral-start", params.SpiralLengthStart, "initial spiral leg length")
	cmd.Flags().Float64Var(&params.SpiralLengthFactor, "spiral-factor", params.SpiralLengthFactor, "spiral leg growth factor")

	return cmd
}

// overrideLayoutFlags copies explicitly set flags from flagged onto cfg.
func overrideLayoutFlags(cmd *cobra.Command, cfg *spider.Config, flagged spider.Config) {
	set := cmd.Flags().Changed
	if set("switchover") {
		cfg.CircleSpiralSwitchover = flagged.CircleSpiralSwitchover
	}
	if set("circle-separation") {
		cfg.CircleFootSeparation = flagged.CircleFootSeparation
	}
	if set("circle-start") {
		cfg.CircleStartAngle = flagged.CircleStartAngle
	}
	if set("spiral-separation") {
		cfg.SpiralFootSeparation = flagged.SpiralFootSeparation
	}
	if set("spiral-start") {
		cfg.SpiralLengthStart = flagged.SpiralLengthStart
	}
	if set("spiral-factor") {
		cfg.SpiralLengthFactor = flagged.SpiralLengthFactor
	}
}

// footRows lays out count feet around the origin.
func footRows(count int, p layout.Params) ([]footRow, layout.Mode) {
	pts, mode := layout.Feet(count, geom.Coord{}, p)
	rows := make([]footRow, len(pts))
	for i, pt := range pts {
		deg := math.Atan2(pt.Y, pt.X) * 180 / math.Pi
		if deg < 0 {
			deg += 360
		}
		rows[i] = footRow{
			Index:  i,
			Point:  pt,
			Radius: math.Hypot(pt.X, pt.Y),
			Angle:  deg,
			Z:      spider.SpiderfiedZ(pt.Y),
		}
	}
	return rows, mode
}

func printLayout(w io.Writer, mode layout.Mode, feet []footRow) {
	printKeyValue(w, "mode", mode.String())
	printKeyValue(w, "feet", strconv.Itoa(len(feet)))

	rows := make([][]string, len(feet))
	for i, f := range feet {
		rows[i] = []string{
			strconv.Itoa(f.Index),
			fmt.Sprintf("%.2f", f.Point.X),
			fmt.Sprintf("%.2f", f.Point.Y),
			fmt.Sprintf("%.2f", f.Radius),
			fmt.Sprintf("%.1f°", f.Angle),
			strconv.Itoa(f.Z - spider.MaxMarkerZIndex),
		}
	}
	fmt.Fprintln(w, newTable([]string{"#", "dX", "dY", "Radius", "Angle", "Z+max"}, rows, nil).Render())
}
