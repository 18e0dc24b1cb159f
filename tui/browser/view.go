package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/atlas/pkg/countries"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/grovetools/atlas/tui/components/table"
	"github.com/grovetools/atlas/tui/theme"
)

var listHeaders = []string{"Name", "Region", "Capital", "Population"}

// headerLines is the table chrome above the first data row.
const headerLines = 3

// View renders the browser.
func (m *Model) View() string {
	if m.help.ShowAll {
		return m.help.View()
	}

	t := theme.DefaultTheme
	region := m.controls.Region()
	regionStyle := t.Muted
	if !region.IsNone() {
		regionStyle = t.Accent
	}

	lines := []string{
		m.statusLine(),
		m.search.View() + "  " + t.Muted.Render("Region:") + " " + regionStyle.Render(region.String()),
		"",
		m.body(),
		m.detailLine(),
		m.help.View(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	t := theme.DefaultTheme
	title := t.Accent.Render("atlas")

	switch m.summary.Status {
	case countries.StatusLoading:
		text := m.spinner.View() + " Loading countries..."
		if m.summary.Count > 0 {
			text += t.Muted.Render(fmt.Sprintf(" (showing %d cached)", m.summary.Count))
		}
		return title + " " + text

	case countries.StatusReceived:
		return title + " " + t.Success.Render("✓") + " " +
			fmt.Sprintf("%d of %d countries", len(m.visible), m.summary.Count)

	case countries.StatusRejected:
		msg := ""
		if m.summary.Error != nil {
			msg = *m.summary.Error
		}
		return title + " " + t.Error.Render("Error: "+msg) + " " + t.Muted.Render("press r to retry")

	default:
		return title + " " + t.Muted.Render("press r to load countries")
	}
}

func (m *Model) body() string {
	if len(m.visible) > 0 {
		return m.viewport.View()
	}

	t := theme.DefaultTheme
	msg := ""
	if m.summary.Count > 0 || m.summary.Status == countries.StatusReceived {
		msg = t.Muted.Render("No countries match the current filters.")
	}
	return lipgloss.NewStyle().Height(m.viewport.Height).Render(msg)
}

func (m *Model) detailLine() string {
	c, ok := m.Selected()
	if !ok {
		return ""
	}
	t := theme.DefaultTheme
	parts := []string{t.Bold.Render(c.Name)}
	if c.Capital != "" {
		parts = append(parts, "capital "+c.Capital)
	}
	parts = append(parts, "population "+c.DisplayPopulation())
	if c.Flags.SVG != "" {
		parts = append(parts, t.Muted.Render(c.Flags.SVG))
	}
	return strings.Join(parts, t.Muted.Render(" · "))
}

// renderList rebuilds the list content and scrolls the cursor into view.
func (m *Model) renderList() {
	if len(m.visible) == 0 {
		m.viewport.SetContent("")
		m.viewport.GotoTop()
		return
	}

	m.viewport.SetContent(table.SelectableTable(listHeaders, Rows(m.visible), m.cursor))

	line := m.cursor + headerLines
	switch {
	case m.cursor == 0:
		m.viewport.GotoTop()
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// Rows converts countries to table rows.
func Rows(list []models.Country) [][]string {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{c.Name, c.Region, c.Capital, c.DisplayPopulation()})
	}
	return rows
}
