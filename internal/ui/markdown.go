package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// buildMarkdownRenderer returns a renderer for the given glamour standard
// style. It falls back to plain word wrapping when markdown is disabled or
// glamour cannot build the style.
func buildMarkdownRenderer(style string, enabled bool, width int) func(string) string {
	if width < 20 {
		width = 20
	}
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}
	if !enabled {
		return fallback
	}

	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
