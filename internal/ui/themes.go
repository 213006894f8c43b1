package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of lipgloss colors.
type Theme struct {
	// Name is the identifier of the theme.
	Name    string
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTheme is the default palette for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Info:    lipgloss.Color("#4488FF"),
		Dim:     lipgloss.Color("#666666"),
	}

	// NoColorTheme renders text with the terminal's default colors.
	// Used when NO_COLOR is set.
	NoColorTheme = Theme{
		Name:    "none",
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Mostly useful in tests.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the theme. Colors are disabled when noColor is true or
// the NO_COLOR environment variable is present (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

func render(c lipgloss.TerminalColor, bold bool, s string) string {
	return lipgloss.NewStyle().Foreground(c).Bold(bold).Render(s)
}

// Success renders s in the theme's success color.
func Success(s string) string { return render(GetCurrentTheme().Success, true, s) }

// Warning renders s in the theme's warning color.
func Warning(s string) string { return render(GetCurrentTheme().Warning, true, s) }

// Error renders s in the theme's error color.
func Error(s string) string { return render(GetCurrentTheme().Error, true, s) }

// Info renders s in the theme's info color.
func Info(s string) string { return render(GetCurrentTheme().Info, false, s) }

// Dim renders s in the theme's muted color.
func Dim(s string) string { return render(GetCurrentTheme().Dim, false, s) }
