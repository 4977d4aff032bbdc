package ui

import (
	"fmt"
	"strings"

	"prism/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var paletteKeys = []string{
	KeyForeground,
	KeyMuted,
	KeyAccent,
	KeyBorder,
	KeyBorderFocused,
	KeySelection,
	KeyError,
	KeySuccess,
	KeyLink,
}

var themeNotes = map[theme.Theme]string{
	theme.Light:             "**Light** uses the Fluent palette on a light background.",
	theme.Dark:              "**Dark** uses the Fluent palette on a dark background.",
	theme.HighContrast1:     "**High contrast #1** is set by the OS and overrides your preference.",
	theme.HighContrast2:     "**High contrast #2** is set by the OS and overrides your preference.",
	theme.HighContrastWhite: "**High contrast white** is set by the OS and overrides your preference.",
	theme.HighContrastBlack: "**High contrast black** is set by the OS and overrides your preference.",
}

// View implements tea.Model.
func (m *App) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	sections := []string{
		m.renderHeader(width),
		m.renderPanel("Resources", m.resourceLines(), width),
		m.renderPanel("Palette", m.paletteLines(), width),
		m.renderPanel("History", m.historyLines(), width),
		m.renderMarkdown(m.noteMarkdown()),
		m.renderStatus(width),
	}
	if m.help.ShowAll {
		sections = append(sections, m.help.View(m.keys))
	} else {
		sections = append(sections, m.renderFooter(width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *App) style(fgKey string) lipgloss.Style {
	s := m.cfg.Assets.Renderer().NewStyle()
	if c, ok := m.cfg.Host.Color(fgKey); ok {
		s = s.Foreground(c)
	}
	return s
}

func (m *App) renderHeader(width int) string {
	s := m.style(KeyHeaderFg).Bold(true).Padding(0, 1).Width(width)
	if bg, ok := m.cfg.Host.Color(KeyHeaderBg); ok {
		s = s.Background(bg)
	}
	title := fmt.Sprintf("prism %s  theme: %s  preference: %s",
		m.cfg.Version, m.cfg.Manager.CurrentTheme(), m.cfg.Preference())
	return s.Render(strings.TrimSpace(strings.ReplaceAll(title, "  ", " · ")))
}

func (m *App) renderPanel(title string, lines []string, width int) string {
	border := m.cfg.Assets.Renderer().NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width - 2)
	if c, ok := m.cfg.Host.Color(KeyBorderFocused); ok {
		border = border.BorderForeground(c)
	}
	heading := m.style(KeyAccent).Bold(true).Render(title)
	body := strings.Join(lines, "\n")
	if body == "" {
		body = m.style(KeyMuted).Render("(empty)")
	}
	return border.Render(heading + "\n" + body)
}

func (m *App) resourceLines() []string {
	icons := m.cfg.Assets.Icons()
	ids := m.cfg.Host.Resources()
	lines := make([]string, len(ids))
	for i, id := range ids {
		glyph := icons.Inactive
		if i == len(ids)-1 {
			glyph = icons.Active
		}
		lines[i] = fmt.Sprintf("%s %d %s", glyph, i+1, m.style(KeyForeground).Render(string(id)))
	}
	return lines
}

func (m *App) paletteLines() []string {
	lines := make([]string, 0, len(paletteKeys))
	for _, k := range paletteKeys {
		if _, ok := m.cfg.Host.Color(k); !ok {
			continue
		}
		lines = append(lines, m.style(k).Render("██")+" "+m.style(KeyMuted).Render(k))
	}
	return lines
}

func (m *App) historyLines() []string {
	lines := make([]string, len(m.history))
	for i := range m.history {
		// Newest first.
		lines[i] = m.history[len(m.history)-1-i]
	}
	return lines
}

func (m *App) noteMarkdown() string {
	note, ok := themeNotes[m.cfg.Manager.CurrentTheme()]
	if !ok {
		return "_Resolving theme…_"
	}
	return note
}

func (m *App) renderStatus(width int) string {
	if m.status == "" {
		return ""
	}
	return m.style(KeyMuted).Render(ansi.Truncate(m.status, width, "…"))
}
