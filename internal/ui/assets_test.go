package ui

import (
	"io"
	"testing"

	"prism/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

func TestAssetsFollowTheme(t *testing.T) {
	tests := []struct {
		theme   theme.Theme
		dark    bool
		iconSet string
		mdStyle string
	}{
		{theme.Light, false, "fluent", "light"},
		{theme.Dark, true, "fluent", "dark"},
		{theme.HighContrast1, true, "contrast", "notty"},
		{theme.HighContrast2, true, "contrast", "notty"},
		{theme.HighContrastWhite, false, "contrast", "notty"},
		{theme.HighContrastBlack, true, "contrast", "notty"},
	}

	for _, tt := range tests {
		t.Run(tt.theme.String(), func(t *testing.T) {
			r := lipgloss.NewRenderer(io.Discard)
			a := NewAssets(r)
			a.NotifyThemeChanged(tt.theme)

			if got := r.HasDarkBackground(); got != tt.dark {
				t.Errorf("HasDarkBackground = %v, want %v", got, tt.dark)
			}
			if got := a.Icons().Name; got != tt.iconSet {
				t.Errorf("icon set = %q, want %q", got, tt.iconSet)
			}
			if got := a.MarkdownStyle(); got != tt.mdStyle {
				t.Errorf("markdown style = %q, want %q", got, tt.mdStyle)
			}
			if a.Renderer() != r {
				t.Error("Renderer should return the renderer passed to NewAssets")
			}
		})
	}
}

func TestAssetsResetAfterHighContrast(t *testing.T) {
	a := NewAssets(lipgloss.NewRenderer(io.Discard))
	a.NotifyThemeChanged(theme.HighContrast1)
	a.NotifyThemeChanged(theme.Light)
	if got := a.Icons(); got != fluentIcons {
		t.Fatalf("icons = %+v, want fluent set", got)
	}
	if got := a.MarkdownStyle(); got != "light" {
		t.Fatalf("markdown style = %q, want light", got)
	}
}
