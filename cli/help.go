package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/grovetools/atlas/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	helpMaxWidth = 72
	helpMinWidth = 40
)

// HelpExtrasFunc renders additional help sections after the examples.
type HelpExtrasFunc func(w io.Writer, t *theme.Theme)

var (
	helpExtras   = make(map[*cobra.Command]HelpExtrasFunc)
	helpExtrasMu sync.RWMutex
)

// SetStyledHelp replaces cobra's help and usage output for cmd.
// Usage is left empty; errors are reported by ErrorHandler.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(renderHelp)
	cmd.SetUsageFunc(func(*cobra.Command) error { return nil })
}

// SetStyledHelpWithExtras is SetStyledHelp plus a custom trailing section.
func SetStyledHelpWithExtras(cmd *cobra.Command, extras HelpExtrasFunc) {
	helpExtrasMu.Lock()
	helpExtras[cmd] = extras
	helpExtrasMu.Unlock()
	SetStyledHelp(cmd)
}

// ApplyStyledHelpRecursive applies SetStyledHelp to cmd and every subcommand.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	SetStyledHelp(cmd)
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

type helpStyles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	muted   lipgloss.Style
}

func newHelpStyles(t *theme.Theme) helpStyles {
	return helpStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Orange),
		heading: lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange),
		name:    lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Cyan),
		flag:    lipgloss.NewStyle().Foreground(t.Colors.Violet),
		muted:   t.Muted,
	}
}

func helpWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil:
		return helpMaxWidth
	case width < helpMinWidth:
		return helpMinWidth
	case width > helpMaxWidth:
		return helpMaxWidth
	}
	return width
}

func renderHelp(cmd *cobra.Command, _ []string) {
	w := cmd.OutOrStdout()
	t := theme.DefaultTheme
	st := newHelpStyles(t)

	fmt.Fprintln(w, " "+st.title.Render(strings.ToUpper(cmd.CommandPath())))

	description, examples := splitExamples(cmd.Long)
	if description == "" {
		description = cmd.Short
	}
	for _, line := range strings.Split(ansi.Wordwrap(description, helpWidth()-2, ""), "\n") {
		fmt.Fprintln(w, " "+line)
	}

	heading(w, st, "USAGE")
	if cmd.Runnable() {
		fmt.Fprintln(w, " "+cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, " %s <command>\n", cmd.CommandPath())

		var rows [][2]string
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				rows = append(rows, [2]string{sub.Name(), sub.Short})
			}
		}
		heading(w, st, "COMMANDS")
		writeColumns(w, rows, st.name)
	}

	if rows := flagRows(cmd.LocalFlags()); len(rows) > 0 {
		heading(w, st, "FLAGS")
		writeColumns(w, rows, st.flag)
	}
	if rows := flagRows(cmd.InheritedFlags()); len(rows) > 0 {
		heading(w, st, "GLOBAL FLAGS")
		writeColumns(w, rows, st.flag)
	}

	if cmd.Example != "" {
		examples = cmd.Example
	}
	if examples != "" {
		heading(w, st, "EXAMPLES")
		for _, line := range strings.Split(examples, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
				fmt.Fprintln(w)
			case strings.HasPrefix(line, "#"):
				fmt.Fprintln(w, "   "+st.muted.Render(line))
			default:
				fmt.Fprintln(w, "   "+line)
			}
		}
	}

	helpExtrasMu.RLock()
	extras := helpExtras[cmd]
	helpExtrasMu.RUnlock()
	if extras != nil {
		extras(w, t)
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w, "\n "+st.muted.Render(fmt.Sprintf("Run '%s <command> --help' for details.", cmd.CommandPath())))
	}
}

func heading(w io.Writer, st helpStyles, title string) {
	fmt.Fprintln(w, "\n "+st.heading.Render(title))
}

// splitExamples separates an "Examples:" block at the end of a long description.
func splitExamples(long string) (description, examples string) {
	if idx := strings.Index(long, "\nExamples:\n"); idx != -1 {
		return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len("\nExamples:\n"):])
	}
	return strings.TrimSpace(long), ""
}

// flagRows lists the visible flags of fs as name/usage pairs.
func flagRows(fs *pflag.FlagSet) [][2]string {
	var rows [][2]string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		name := "    --" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
		}
		usage := f.Usage
		if typ := f.Value.Type(); typ != "bool" {
			name += " " + typ
			if f.DefValue != "" {
				usage += fmt.Sprintf(" (default %s)", f.DefValue)
			}
		}
		rows = append(rows, [2]string{name, usage})
	})
	return rows
}

func writeColumns(w io.Writer, rows [][2]string, style lipgloss.Style) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	for _, row := range rows {
		pad := strings.Repeat(" ", width-len(row[0]))
		fmt.Fprintf(w, " %s%s  %s\n", style.Render(row[0]), pad, row[1])
	}
}
