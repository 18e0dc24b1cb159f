package browser

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/atlas/pkg/models"
)

// chrome is the number of lines around the list: status, search, blank,
// details and help.
const chrome = 5

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 3)
		m.search.Width = max(msg.Width/2, 20)
		m.renderList()
		return m, nil

	case datasetChangedMsg:
		m.refresh()
		return m, m.waitForChange()

	case loadFinishedMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.help.ShowAll {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

// updateSearch forwards keys to the search input and mirrors its value into
// the Filter State on every keystroke.
func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Done):
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != m.controls.Search() {
		m.controls.SetSearch(value)
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Search):
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NextRegion):
		m.controls.SetRegion(models.NextRegion(m.controls.Region()))
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keys.Clear):
		m.controls.ClearControls()
		m.search.SetValue("")
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.viewport.Height / 2)

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.viewport.Height / 2)

	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.visible))

	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.visible))
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.renderList()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// refresh re-reads both stores and recomputes the visible rows.
func (m *Model) refresh() {
	m.summary = m.countries.SelectDatasetSummary()
	st := m.controls.Snapshot()
	m.visible = m.countries.SelectVisibleCountries(st.Search, st.Region)
	m.clampCursor()
	m.renderList()
}
