package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderfy/pkg/scene"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

// playLogSize is how many recent events the play view keeps on screen.
const playLogSize = 8

// mapTypeCycle is the order t steps through.
var mapTypeCycle = []string{
	spider.MapTypeRoadmap,
	spider.MapTypeSatellite,
	spider.MapTypeHybrid,
	spider.MapTypeTerrain,
}

// playCommand creates the play command for clicking through a scene.
func (c *CLI) playCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [scene]",
		Short: "Click through a scene interactively",
		Long: `Click through a scene interactively.

The scene's script runs first. Then:
  ↑/↓ select a marker   ⏎ click it      m click the map
  +/- zoom              t next map type  u unspiderfy
  q quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScene(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer sc.Close()
			if err := sc.Run(); err != nil {
				return err
			}

			p := tea.NewProgram(newPlayModel(sc), tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
	return cmd
}

// =============================================================================
// playModel - Interactive scene driver
// =============================================================================

// playModel is the bubbletea model behind play. Every key is applied to the
// scene synchronously and deferred engine work is flushed before the next
// render, so the view always shows settled statuses.
type playModel struct {
	sc     *scene.Scene
	cursor int
	log    []string
	seen   int
	err    error
}

func newPlayModel(sc *scene.Scene) playModel {
	m := playModel{sc: sc}
	return m.collect()
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	markers := m.sc.Markers()
	view := m.sc.Surface.View()

	var step *scene.Step
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(markers)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
		if len(markers) == 0 {
			return m, nil
		}
		s := scene.Click(markers[m.cursor].ID)
		step = &s
	case "m":
		step = &scene.Step{Action: scene.ActionMapClick}
	case "+", "=":
		step = &scene.Step{Action: scene.ActionZoom, Zoom: view.Zoom + 1}
	case "-":
		step = &scene.Step{Action: scene.ActionZoom, Zoom: max(view.Zoom-1, 0)}
	case "t":
		step = &scene.Step{Action: scene.ActionMapType, MapType: nextMapType(m.sc.Surface.MapType())}
	case "u":
		step = &scene.Step{Action: scene.ActionUnspider}
	default:
		return m, nil
	}

	m.err = m.sc.Apply(*step)
	m.sc.Surface.Flush()
	return m.collect(), nil
}

// collect appends events recorded since the last call to the on-screen log.
func (m playModel) collect() playModel {
	evs := m.sc.Events()
	for _, ev := range evs[m.seen:] {
		m.log = append(m.log, ev.String())
	}
	m.seen = len(evs)
	if n := len(m.log); n > playLogSize {
		m.log = m.log[n-playLogSize:]
	}
	return m
}

func nextMapType(cur string) string {
	for i, t := range mapTypeCycle {
		if t == cur {
			return mapTypeCycle[(i+1)%len(mapTypeCycle)]
		}
	}
	return mapTypeCycle[0]
}

func (m playModel) View() string {
	var b strings.Builder
	view := m.sc.Surface.View()
	markers := m.sc.Markers()

	b.WriteString(styleTitle.Render(m.sc.Name))
	b.WriteString("  ")
	b.WriteString(styleDim.Render(fmt.Sprintf("%s · zoom %d · %s", m.sc.Engine.State(), view.Zoom, m.sc.Surface.MapType())))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ select  ⏎ click  m map  +/- zoom  t type  u unspiderfy  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(markers))
	for i, mk := range markers {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		pt := view.LatLngToPoint(mk.Position())
		rows[i] = []string{
			cursor,
			mk.ID,
			string(m.sc.Status(mk.ID)),
			fmt.Sprintf("%.0f,%.0f", pt.X, pt.Y),
			strconv.Itoa(mk.ZIndex()),
		}
	}
	t := newTable([]string{"", "Marker", "Status", "Pixel", "Z"}, rows, func(row, col int) lipgloss.Style {
		if row >= len(markers) {
			return lipgloss.NewStyle()
		}
		if col == 2 {
			return statusStyle(m.sc.Status(markers[row].ID))
		}
		if row == m.cursor {
			return styleSelected
		}
		return lipgloss.NewStyle()
	})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	for _, line := range m.log {
		b.WriteString(styleDim.Render("  " + line))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}
