package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/toolhost/pkg/tools/toolbox"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	toolNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // cyan
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
)

// maxDescriptionWidth caps the description column in terminal cells.
const maxDescriptionWidth = 60

const columnGap = "  "

// renderToolTable renders tools as an aligned NAME / PARAMETERS /
// DESCRIPTION table. Column widths are measured in terminal cells so
// non-ASCII text lines up.
func renderToolTable(tools []toolbox.Tool) string {
	if len(tools) == 0 {
		return dimStyle.Render("no tools")
	}

	rows := make([][3]string, 0, len(tools))
	widths := [3]int{
		runewidth.StringWidth("NAME"),
		runewidth.StringWidth("PARAMETERS"),
		runewidth.StringWidth("DESCRIPTION"),
	}

	for _, t := range tools {
		row := [3]string{
			t.Name,
			formatParams(t.Params),
			runewidth.Truncate(t.Description, maxDescriptionWidth, "…"),
		}
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
		rows = append(rows, row)
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(
		runewidth.FillRight("NAME", widths[0]) + columnGap +
			runewidth.FillRight("PARAMETERS", widths[1]) + columnGap +
			"DESCRIPTION",
	))

	for _, row := range rows {
		sb.WriteString("\n")
		sb.WriteString(toolNameStyle.Render(runewidth.FillRight(row[0], widths[0])))
		sb.WriteString(columnGap)
		sb.WriteString(dimStyle.Render(runewidth.FillRight(row[1], widths[1])))
		sb.WriteString(columnGap)
		sb.WriteString(row[2])
	}

	return sb.String()
}

// formatParams renders parameters as "name:type", marking required ones
// with "*" and showing defaults as "=value".
func formatParams(params []toolbox.Param) string {
	if len(params) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name
		if p.Required {
			s += "*"
		}
		s += ":" + string(p.Type)
		if p.Default != nil {
			s += fmt.Sprintf("=%v", p.Default)
		}
		parts = append(parts, s)
	}

	return strings.Join(parts, " ")
}
