// Package tui holds terminal setup shared by the interactive commands.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/atlas/tui/theme"
	"github.com/muesli/termenv"
)

// InitializeTUI prepares the terminal for an interactive program. It selects
// the configured palette and honors CLICOLOR_FORCE, COLORTERM and NO_COLOR.
func InitializeTUI(themeName string) {
	switch {
	case os.Getenv("NO_COLOR") != "":
		lipgloss.SetColorProfile(termenv.Ascii)
	case os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
	theme.SetTheme(themeName)
}
