package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderfy/pkg/events"
	"github.com/matzehuels/spiderfy/pkg/scene"
)

// markerRow is one line of the inspect table.
type markerRow struct {
	ID        string
	X, Y      float64
	Z         int
	Status    events.Status
	Neighbors int
}

// inspectReport is everything inspect prints.
type inspectReport struct {
	Name      string
	State     string
	MapType   string
	Nearby    float64
	Rows      []markerRow
	Clustered []string
}

// inspectCommand creates the inspect command for tabulating scene markers.
func (c *CLI) inspectCommand() *cobra.Command {
	var clicks []string

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Tabulate markers with status and neighbour counts",
		Long: `Tabulate markers with status and neighbour counts.

Each tracked marker is listed with its pixel position, z-index, the status a
format pass would assign it, and the number of markers within the nearby
distance of its original position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := buildInspectReport(cmd.Context(), args[0], clicks)
			if err != nil {
				return err
			}
			printInspectReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&clicks, "click", nil, "marker id to click after the script (repeatable)")

	return cmd
}

// buildInspectReport loads and plays the scene, then queries the engine.
func buildInspectReport(ctx context.Context, path string, clicks []string) (inspectReport, error) {
	sc, err := loadScene(ctx, path)
	if err != nil {
		return inspectReport{}, err
	}
	defer sc.Close()

	if err := runScene(sc, clicks); err != nil {
		return inspectReport{}, err
	}

	eng := sc.Engine
	statuses, err := eng.Statuses()
	if err != nil {
		return inspectReport{}, err
	}
	view := sc.Surface.View()

	rep := inspectReport{
		Name:    sc.Name,
		State:   eng.State().String(),
		MapType: sc.Surface.MapType(),
		Nearby:  eng.Config().NearbyDistance,
	}
	for _, ms := range statuses {
		near, err := eng.NeighborsOf(ms.Marker, false)
		if err != nil {
			return inspectReport{}, err
		}
		pt := view.LatLngToPoint(ms.Marker.Position())
		rep.Rows = append(rep.Rows, markerRow{
			ID:        scene.MarkerID(ms.Marker),
			X:         pt.X,
			Y:         pt.Y,
			Z:         ms.Marker.ZIndex(),
			Status:    ms.Status,
			Neighbors: len(near),
		})
	}

	clustered, err := eng.WithNeighbors()
	if err != nil {
		return inspectReport{}, err
	}
	for _, m := range clustered {
		rep.Clustered = append(rep.Clustered, scene.MarkerID(m))
	}
	return rep, nil
}

func printInspectReport(w io.Writer, rep inspectReport) {
	fmt.Fprintln(w, styleTitle.Render(rep.Name))
	printKeyValue(w, "state", rep.State)
	printKeyValue(w, "map type", rep.MapType)
	printKeyValue(w, "nearby", strconv.FormatFloat(rep.Nearby, 'f', -1, 64)+"px")
	printKeyValue(w, "markers", strconv.Itoa(len(rep.Rows)))
	printKeyValue(w, "clustered", fmt.Sprintf("%d of %d", len(rep.Clustered), len(rep.Rows)))

	rows := make([][]string, len(rep.Rows))
	for i, r := range rep.Rows {
		rows[i] = []string{
			r.ID,
			fmt.Sprintf("%.1f", r.X),
			fmt.Sprintf("%.1f", r.Y),
			strconv.Itoa(r.Z),
			string(r.Status),
			strconv.Itoa(r.Neighbors),
		}
	}
	t := newTable([]string{"Marker", "X", "Y", "Z", "Status", "Near"}, rows, func(row, col int) lipgloss.Style {
		if col == 4 && row < len(rep.Rows) {
			return statusStyle(rep.Rows[row].Status)
		}
		return lipgloss.NewStyle()
	})
	fmt.Fprintln(w, t.Render())
}
