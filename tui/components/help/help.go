package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/atlas/tui/keymap"
	"github.com/grovetools/atlas/tui/theme"
)

// KeyMap is what the help component needs from a keymap.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// Model is an embeddable help component with a short single-line view and a
// scrollable full view.
type Model struct {
	Keys    KeyMap
	ShowAll bool
	Width   int
	Height  int
	Theme   *theme.Theme
	Title   string

	viewport viewport.Model
}

// New creates a new help model with default settings
func New(keys KeyMap) Model {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = false
	return Model{
		Keys:     keys,
		Theme:    theme.DefaultTheme,
		viewport: vp,
	}
}

// Update handles messages for the help component
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.ShowAll {
			m.setViewportContent()
		}

	case tea.KeyMsg:
		if m.ShowAll {
			if msg.Type == tea.KeyEsc || msg.String() == "?" || msg.String() == "q" {
				m.Toggle()
				return m, nil
			}
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the help component
func (m Model) View() string {
	if m.Theme == nil {
		m.Theme = theme.DefaultTheme
	}

	if m.ShowAll {
		content := m.viewport.View()
		if m.viewport.TotalLineCount() > m.viewport.Height {
			indicator := "↕ more"
			if m.viewport.AtTop() {
				indicator = "↓ more"
			} else if m.viewport.AtBottom() {
				indicator = "↑ more"
			}
			indicatorStyle := m.Theme.Muted.Align(lipgloss.Right).Width(m.viewport.Width)
			content = lipgloss.JoinVertical(lipgloss.Right, content, indicatorStyle.Render(indicator))
		}
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
	}

	if m.Keys == nil {
		return ""
	}
	return m.viewShort(m.Keys.ShortHelp())
}

// viewShort renders the compact, single-line help view.
func (m Model) viewShort(group []key.Binding) string {
	var pairs []string
	for _, binding := range group {
		if !binding.Enabled() {
			continue
		}
		keys := binding.Help().Key
		desc := binding.Help().Desc
		if keys != "" && desc != "" {
			pairs = append(pairs, fmt.Sprintf("%s %s",
				m.Theme.Highlight.Render(keys),
				m.Theme.Muted.Render(desc),
			))
		}
	}

	if len(pairs) == 0 {
		return ""
	}

	helpPrompt := m.Theme.Highlight.Render("?") + " " + m.Theme.Muted.Render("help")
	return helpPrompt + " • " + strings.Join(pairs, " • ")
}

// setViewportContent renders the full help and sizes the viewport around it.
func (m *Model) setViewportContent() {
	const (
		verticalMargin   = 4
		horizontalMargin = 4
		gutterWidth      = 4
	)

	var sections []keymap.Section
	switch k := m.Keys.(type) {
	case keymap.SectionedKeyMap:
		sections = k.Sections()
	case KeyMap:
		for _, group := range k.FullHelp() {
			sections = append(sections, keymap.NewSection("", group...))
		}
	}

	content := m.renderHelpContent(sections, verticalMargin, horizontalMargin, gutterWidth)
	m.viewport.SetContent(content)
	m.viewport.Width = lipgloss.Width(content)
	m.viewport.Height = max(m.Height-verticalMargin-1, 1)
}

// renderHelpContent prefers a single column and switches to two columns when
// the content is taller than the screen.
func (m *Model) renderHelpContent(sections []keymap.Section, vMargin, hMargin, gutter int) string {
	var blocks []string
	for _, section := range sections {
		if block := m.renderSection(section); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return ""
	}

	titleText := m.Title
	if titleText == "" {
		titleText = "Help"
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.Theme.Colors.Orange).
		MarginBottom(1).
		Align(lipgloss.Center)

	singleCol := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	single := lipgloss.JoinVertical(lipgloss.Center, titleStyle.Width(lipgloss.Width(singleCol)).Render(titleText), singleCol)
	if lipgloss.Height(single) <= m.Height-vMargin-1 || len(blocks) < 2 {
		return single
	}

	twoCol := buildColumns(blocks, 2, gutter)
	two := lipgloss.JoinVertical(lipgloss.Center, titleStyle.Width(lipgloss.Width(twoCol)).Render(titleText), twoCol)
	if lipgloss.Width(two) <= m.Width-hMargin {
		return two
	}
	return single
}

// buildColumns distributes blocks across n columns, shortest column first.
func buildColumns(blocks []string, numCols, gutter int) string {
	columns := make([][]string, numCols)
	heights := make([]int, numCols)

	for _, block := range blocks {
		minIdx := 0
		for i := 1; i < numCols; i++ {
			if heights[i] < heights[minIdx] {
				minIdx = i
			}
		}
		columns[minIdx] = append(columns[minIdx], block)
		heights[minIdx] += lipgloss.Height(block)
	}

	gutterStr := strings.Repeat(" ", gutter)
	result := lipgloss.JoinVertical(lipgloss.Left, columns[0]...)
	for i := 1; i < numCols; i++ {
		if len(columns[i]) == 0 {
			continue
		}
		result = lipgloss.JoinHorizontal(lipgloss.Top, result, gutterStr, lipgloss.JoinVertical(lipgloss.Left, columns[i]...))
	}
	return result
}

// renderSection renders one section as a bordered box of key/description rows.
func (m *Model) renderSection(section keymap.Section) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(m.Theme.Colors.Cyan)

	table := ltable.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})

	rows := 0
	for _, binding := range section.FilterEnabled() {
		h := binding.Help()
		if h.Key == "" || h.Desc == "" {
			continue
		}
		table = table.Row(keyStyle.Render(h.Key), m.Theme.Muted.Italic(true).Render(h.Desc))
		rows++
	}
	if rows == 0 {
		return ""
	}

	content := table.String()
	if section.Name != "" {
		title := lipgloss.NewStyle().
			Foreground(m.Theme.Colors.Orange).
			Italic(true).
			Render(section.Name)
		content = lipgloss.JoinVertical(lipgloss.Left, title, content)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Theme.Colors.Border).
		Padding(0, 1).
		Render(content)
}

// Toggle switches between the short and full views.
func (m *Model) Toggle() {
	m.ShowAll = !m.ShowAll
	if m.ShowAll {
		m.setViewportContent()
		m.viewport.GotoTop()
	}
}

// SetSize sets the dimensions of the help view
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
}
