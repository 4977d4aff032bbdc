package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// footerHint defines a key hint for the footer bar.
type footerHint struct {
	key  string
	desc string
}

func hintsFor(bindings []key.Binding) []footerHint {
	hints := make([]footerHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, footerHint{key: h.Key, desc: h.Desc})
	}
	return hints
}

// renderFooter renders the short key hints as pills with the resolved theme
// right-aligned.
func (m *App) renderFooter(width int) string {
	themeText := m.style(KeyMuted).Render("Theme: " + m.cfg.Manager.CurrentTheme().String())
	themeWidth := lipgloss.Width(themeText)

	hints := m.trimHintsToFit(hintsFor(m.keys.ShortHelp()), width-themeWidth-4)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = m.keyPill(h.key, h.desc)
	}
	left := strings.Join(parts, "  ")

	spacing := width - lipgloss.Width(left) - themeWidth
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + themeText
}

func (m *App) keyPill(k, desc string) string {
	pill := m.cfg.Assets.Renderer().NewStyle().Bold(true)
	if c, ok := m.cfg.Host.Color(KeyHeaderFg); ok {
		pill = pill.Foreground(c)
	}
	if c, ok := m.cfg.Host.Color(KeyAccent); ok {
		pill = pill.Background(c)
	}
	return pill.Render(" "+k+" ") + " " + m.style(KeyMuted).Render(desc)
}

// trimHintsToFit drops hints from the end until they fit.
func (m *App) trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	for len(hints) > 0 && m.hintsWidth(hints) > availableWidth {
		hints = hints[:len(hints)-1]
	}
	return hints
}

func (m *App) hintsWidth(hints []footerHint) int {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = m.keyPill(h.key, h.desc)
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
