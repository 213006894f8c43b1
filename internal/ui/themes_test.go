package ui

import (
	"strings"
	"testing"
)

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Run("noColor flag wins", func(t *testing.T) {
		InitTheme(true)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("theme = %q, want none", GetCurrentTheme().Name)
		}
	})

	t.Run("NO_COLOR disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("theme = %q, want none", GetCurrentTheme().Name)
		}
	})
}

func TestRenderKeepsText(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	for _, theme := range []Theme{DarkTheme, NoColorTheme} {
		SetCurrentTheme(theme)
		for name, fn := range map[string]func(string) string{
			"Success": Success, "Warning": Warning, "Error": Error, "Info": Info, "Dim": Dim,
		} {
			if got := fn("sweep complete"); !strings.Contains(got, "sweep complete") {
				t.Errorf("%s/%s(%q) = %q, text lost", theme.Name, name, "sweep complete", got)
			}
		}
	}
}
