package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/spiderfy/pkg/events"
)

// Terminal palette. Marker statuses reuse the fills the frame renderer paints.
var (
	accent  = lipgloss.Color("#4fb3bf")
	failure = lipgloss.Color("167")
	bright  = lipgloss.Color("255")
	subtle  = lipgloss.Color("245")
	muted   = lipgloss.Color("240")

	statusColors = map[events.Status]lipgloss.Color{
		events.StatusSpiderfied:     "#e4572e",
		events.StatusSpiderfiable:   "#f3a712",
		events.StatusUnspiderfiable: "#7d8bb3",
		events.StatusUnspiderfied:   "#7d8bb3",
	}
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	styleDim      = lipgloss.NewStyle().Foreground(muted)
	styleValue    = lipgloss.NewStyle().Foreground(bright)
	styleNumber   = lipgloss.NewStyle().Foreground(accent)
	styleKey      = lipgloss.NewStyle().Foreground(subtle).Width(14)
	styleHeader   = lipgloss.NewStyle().Foreground(subtle).Bold(true)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(accent)
	styleCell     = lipgloss.NewStyle().Padding(0, 1)

	styleIconSuccess = lipgloss.NewStyle().Foreground(statusColors[events.StatusSpiderfied])
	styleIconError   = lipgloss.NewStyle().Foreground(failure)
	styleIconSpinner = lipgloss.NewStyle().Foreground(accent)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"

	// headerRow is the row index lipgloss tables pass for the header.
	headerRow = -1
)

// statusStyle colours a marker status for tables and the play view.
func statusStyle(s events.Status) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return styleDim
}

func printSuccess(w io.Writer, format string, args ...any) {
	printIcon(w, styleIconSuccess, iconSuccess, format, args...)
}

func printError(w io.Writer, format string, args ...any) {
	printIcon(w, styleIconError, iconError, format, args...)
}

func printIcon(w io.Writer, style lipgloss.Style, icon, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}

// printKeyValue writes one aligned "key value" line of a report.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", styleKey.Render(key), styleValue.Render(value))
}

// newTable builds the rounded report table used by inspect, layout, and play.
// cell, when non-nil, styles body cells; padding is added either way.
func newTable(headers []string, rows [][]string, cell func(row, col int) lipgloss.Style) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return styleHeader
			case cell == nil:
				return styleCell
			default:
				return cell(row, col).Padding(0, 1)
			}
		})
}
