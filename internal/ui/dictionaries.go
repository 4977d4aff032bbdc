package ui

import (
	"prism/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// Color keys looked up through the Host.
const (
	KeyBackground    = "background"
	KeyForeground    = "foreground"
	KeyMuted         = "muted"
	KeyAccent        = "accent"
	KeyBorder        = "border"
	KeyBorderFocused = "border-focused"
	KeySelection     = "selection"
	KeyHeaderBg      = "header-bg"
	KeyHeaderFg      = "header-fg"
	KeyError         = "error"
	KeySuccess       = "success"
	KeyLink          = "link"
)

// Dictionary is a named set of color entries. When several dictionaries are
// attached to a Host, later ones override earlier ones key by key.
type Dictionary struct {
	ID      theme.ResourceID
	Entries map[string]lipgloss.AdaptiveColor
}

// Catalog maps resource identifiers to dictionaries.
type Catalog map[theme.ResourceID]Dictionary

// DefaultCatalog returns the dictionaries shipped with prism.
func DefaultCatalog() Catalog {
	return Catalog{
		theme.ResourceFluentBase:       fluentBase,
		theme.ResourceHighContrastBase: fluentHighContrast,
		theme.ResourceSharedStyles:     sharedStyles,
	}
}

// Fluent palette, light and dark halves.
var fluentBase = Dictionary{
	ID: theme.ResourceFluentBase,
	Entries: map[string]lipgloss.AdaptiveColor{
		KeyBackground:    {Light: "#f3f3f3", Dark: "#202020"},
		KeyForeground:    {Light: "#1b1b1b", Dark: "#e4e4e4"},
		KeyMuted:         {Light: "#616161", Dark: "#9d9d9d"},
		KeyAccent:        {Light: "#005fb8", Dark: "#60cdff"},
		KeyBorder:        {Light: "#d1d1d1", Dark: "#3a3a3a"},
		KeyBorderFocused: {Light: "#005fb8", Dark: "#60cdff"},
		KeySelection:     {Light: "#cce4f7", Dark: "#264f78"},
		KeyHeaderBg:      {Light: "#005fb8", Dark: "#2b2b2b"},
		KeyHeaderFg:      {Light: "#ffffff", Dark: "#ffffff"},
		KeyError:         {Light: "#c42b1c", Dark: "#ff99a4"},
		KeySuccess:       {Light: "#0f7b0f", Dark: "#6ccb5f"},
	},
}

// High-contrast palette. The light half serves HighContrastWhite, the dark
// half the black-background variants.
var fluentHighContrast = Dictionary{
	ID: theme.ResourceHighContrastBase,
	Entries: map[string]lipgloss.AdaptiveColor{
		KeyBackground:    {Light: "#ffffff", Dark: "#000000"},
		KeyForeground:    {Light: "#000000", Dark: "#ffffff"},
		KeyMuted:         {Light: "#000000", Dark: "#ffffff"},
		KeyAccent:        {Light: "#37006e", Dark: "#ffff00"},
		KeyBorder:        {Light: "#000000", Dark: "#ffffff"},
		KeyBorderFocused: {Light: "#37006e", Dark: "#ffff00"},
		KeySelection:     {Light: "#37006e", Dark: "#1aebff"},
		KeyHeaderBg:      {Light: "#000000", Dark: "#ffffff"},
		KeyHeaderFg:      {Light: "#ffffff", Dark: "#000000"},
		KeyError:         {Light: "#b00000", Dark: "#ff6666"},
		KeySuccess:       {Light: "#005500", Dark: "#3ff23f"},
	},
}

// Application styles shared by every theme. Keys defined here win over the base.
var sharedStyles = Dictionary{
	ID: theme.ResourceSharedStyles,
	Entries: map[string]lipgloss.AdaptiveColor{
		KeyLink:          {Light: "#0037da", Dark: "#8ab4f8"},
		KeyBorderFocused: {Light: "#7d56f4", Dark: "#bd93f9"},
	},
}
