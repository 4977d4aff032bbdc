package ui

import (
	"sync"

	"prism/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// IconSet is the glyph set drawn next to list entries.
type IconSet struct {
	Name     string
	Active   string
	Inactive string
	Changed  string
	Arrow    string
}

var (
	fluentIcons = IconSet{Name: "fluent", Active: "●", Inactive: "○", Changed: "✓", Arrow: "→"}
	// High-contrast glyphs avoid thin strokes that vanish in contrast themes.
	contrastIcons = IconSet{Name: "contrast", Active: "[*]", Inactive: "[ ]", Changed: "[+]", Arrow: "->"}
)

// Assets holds everything that changes with the theme but is not a color
// dictionary: the icon set, the renderer's background mode and the markdown
// style. It implements theme.AssetLoader.
type Assets struct {
	mu            sync.RWMutex
	renderer      *lipgloss.Renderer
	icons         IconSet
	markdownStyle string
}

// NewAssets creates assets that render through r.
func NewAssets(r *lipgloss.Renderer) *Assets {
	return &Assets{
		renderer:      r,
		icons:         fluentIcons,
		markdownStyle: "light",
	}
}

// NotifyThemeChanged switches icons, background mode and markdown style for t.
func (a *Assets) NotifyThemeChanged(t theme.Theme) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.renderer.SetHasDarkBackground(hasDarkBackground(t))
	a.icons = fluentIcons
	a.markdownStyle = "light"
	switch {
	case t.IsHighContrast():
		a.icons = contrastIcons
		a.markdownStyle = "notty"
	case t == theme.Dark:
		a.markdownStyle = "dark"
	}
}

// Icons returns the active icon set.
func (a *Assets) Icons() IconSet {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.icons
}

// MarkdownStyle returns the glamour standard style for the active theme.
func (a *Assets) MarkdownStyle() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.markdownStyle
}

// Renderer returns the lipgloss renderer styles should be built from.
func (a *Assets) Renderer() *lipgloss.Renderer {
	return a.renderer
}

func hasDarkBackground(t theme.Theme) bool {
	switch t {
	case theme.Dark, theme.HighContrast1, theme.HighContrast2, theme.HighContrastBlack:
		return true
	default:
		return false
	}
}
