// Package browser is the interactive country browser. It renders the derived
// country view and turns key presses into Filter State intents and Dataset
// State loads.
package browser

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/atlas/pkg/controls"
	"github.com/grovetools/atlas/pkg/countries"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/grovetools/atlas/tui/components/help"
	"github.com/grovetools/atlas/tui/theme"
)

// datasetChangedMsg signals that the Dataset State transitioned.
type datasetChangedMsg struct{}

// loadFinishedMsg is returned by the load command once its Load call returns.
type loadFinishedMsg struct{}

// Model represents the state of the country browser.
type Model struct {
	ctx       context.Context
	controls  *controls.Store
	countries *countries.Store

	keys     KeyMap
	help     help.Model
	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	summary countries.Summary
	visible []models.Country
	cursor  int
	width   int
	height  int

	autoLoad    bool
	changes     chan struct{}
	done        chan struct{}
	unsubscribe func()
}

// Option configures the browser.
type Option func(*Model)

// WithAutoLoad controls whether the browser starts a load when the dataset
// has never been loaded. Enabled by default.
func WithAutoLoad(enabled bool) Option {
	return func(m *Model) {
		m.autoLoad = enabled
	}
}

// WithKeyMap replaces the default keybindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// New creates a browser over the given stores. Close releases the dataset
// subscription.
func New(ctx context.Context, filters *controls.Store, dataset *countries.Store, opts ...Option) *Model {
	t := theme.DefaultTheme

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search for a country..."
	search.PromptStyle = t.Highlight
	search.TextStyle = t.Input
	search.PlaceholderStyle = t.Placeholder
	search.SetValue(filters.Search())

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = t.Highlight

	m := &Model{
		ctx:       ctx,
		controls:  filters,
		countries: dataset,
		keys:      DefaultKeyMap(),
		search:    search,
		spinner:   spin,
		viewport:  viewport.New(80, 19),
		width:     80,
		height:    24,
		autoLoad:  true,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.help = help.New(m.keys)
	m.help.Title = "atlas"
	m.help.SetSize(m.width, m.height)

	m.unsubscribe = dataset.Subscribe(func(countries.Summary) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})

	m.refresh()
	return m
}

// Init starts the spinner, the change listener and, when configured, the
// first load.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForChange(), m.spinner.Tick}
	if m.autoLoad && m.summary.Status == countries.StatusIdle {
		cmds = append(cmds, m.loadCmd())
	}
	return tea.Batch(cmds...)
}

// Close releases the dataset subscription and stops the change listener.
func (m *Model) Close() {
	if m.unsubscribe == nil {
		return
	}
	m.unsubscribe()
	m.unsubscribe = nil
	close(m.done)
}

// Visible returns the rows currently on screen.
func (m *Model) Visible() []models.Country {
	return m.visible
}

// Selected returns the country under the cursor.
func (m *Model) Selected() (models.Country, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return models.Country{}, false
	}
	return m.visible[m.cursor], true
}

// loadCmd runs Load off the UI goroutine. A load already in flight makes
// this a no-op inside the store.
func (m *Model) loadCmd() tea.Cmd {
	ctx, dataset := m.ctx, m.countries
	return func() tea.Msg {
		dataset.Load(ctx)
		return loadFinishedMsg{}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	changes, done := m.changes, m.done
	return func() tea.Msg {
		select {
		case <-changes:
			return datasetChangedMsg{}
		case <-done:
			return nil
		}
	}
}

// Run starts the browser as a full-screen program and blocks until it exits.
func Run(ctx context.Context, filters *controls.Store, dataset *countries.Store, opts ...Option) error {
	m := New(ctx, filters, dataset, opts...)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
