package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/atlas/tui/theme"
)

// Options provides additional configuration for the table
type Options struct {
	Bordered      bool
	AlternateRows bool
	Theme         *theme.Theme
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		Bordered:      true,
		AlternateRows: true,
		Theme:         theme.DefaultTheme,
	}
}

// Builder provides a fluent interface for creating styled tables
type Builder struct {
	table   *ltable.Table
	options Options
}

// NewBuilder creates a new table builder
func NewBuilder() *Builder {
	return &Builder{
		table:   ltable.New(),
		options: DefaultOptions(),
	}
}

// WithTheme sets the theme
func (b *Builder) WithTheme(t *theme.Theme) *Builder {
	b.options.Theme = t
	return b
}

// WithBorder enables or disables the border
func (b *Builder) WithBorder(bordered bool) *Builder {
	b.options.Bordered = bordered
	return b
}

// WithAlternateRows enables or disables alternating row colors
func (b *Builder) WithAlternateRows(alternate bool) *Builder {
	b.options.AlternateRows = alternate
	return b
}

// WithHeaders sets the table headers
func (b *Builder) WithHeaders(headers ...string) *Builder {
	b.table = b.table.Headers(headers...)
	return b
}

// WithRows appends rows
func (b *Builder) WithRows(rows ...[]string) *Builder {
	for _, row := range rows {
		b.table = b.table.Row(row...)
	}
	return b
}

// WithWidth sets the total table width
func (b *Builder) WithWidth(width int) *Builder {
	b.table = b.table.Width(width)
	return b
}

// Build creates the styled table
func (b *Builder) Build() *ltable.Table {
	t := b.options.Theme
	if t == nil {
		t = theme.DefaultTheme
	}

	if b.options.Bordered {
		b.table = b.table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(t.TableBorder)
	} else {
		b.table = b.table.
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(false)
	}

	alternate := b.options.AlternateRows && t.UseAlternatingRows
	b.table = b.table.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return t.TableHeader
		}
		style := t.TableRow
		if alternate && row%2 == 1 {
			style = style.Background(t.Colors.VerySubtleBackground)
		}
		return style
	})

	return b.table
}

// SimpleTable creates a bordered table with headers and rows
func SimpleTable(headers []string, rows [][]string) string {
	return NewBuilder().
		WithHeaders(headers...).
		WithRows(rows...).
		Build().
		String()
}

// StatusTable renders label/value pairs without borders
func StatusTable(items [][]string) string {
	b := NewBuilder().
		WithBorder(false).
		WithAlternateRows(false)

	for _, item := range items {
		if len(item) >= 2 {
			label := theme.DefaultTheme.Muted.Render(item[0] + ":")
			b.WithRows([]string{label, item[1]})
		}
	}

	return b.Build().String()
}

// SelectableTable renders a bordered table with an indicator in front of the
// selected data row. A negative selectedIndex renders no indicator.
func SelectableTable(headers []string, rows [][]string, selectedIndex int) string {
	rendered := NewBuilder().
		WithHeaders(headers...).
		WithRows(rows...).
		Build().
		String()

	// Top border, header and header separator precede the first data row.
	selectedLine := -1
	if selectedIndex >= 0 {
		selectedLine = 1 + selectedIndex
		if len(headers) > 0 {
			selectedLine += 2
		}
	}

	arrow := theme.DefaultTheme.Highlight.Render(">")
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		if i == selectedLine {
			lines[i] = arrow + " " + line
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
