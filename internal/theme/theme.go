// Package theme resolves the effective window theme from user settings and
// OS appearance, and swaps UI resources when it changes.
package theme

import (
	"fmt"
	"strings"

	apperrors "prism/internal/errors"
)

// Theme is either a concrete visual theme or the System preference.
type Theme uint8

const (
	// System defers to the OS. It is a preference only, never an effective theme.
	System Theme = iota
	Light
	Dark
	HighContrast1
	HighContrast2
	HighContrastWhite
	HighContrastBlack

	themeCount
)

// DefaultHighContrast is used when the OS reports a high-contrast variant
// that does not match a recognized one.
const DefaultHighContrast = HighContrastBlack

var themeNames = [themeCount]string{
	System:            "system",
	Light:             "light",
	Dark:              "dark",
	HighContrast1:     "high-contrast-1",
	HighContrast2:     "high-contrast-2",
	HighContrastWhite: "high-contrast-white",
	HighContrastBlack: "high-contrast-black",
}

var themeAliases = map[string]Theme{
	"":               System,
	"auto":           System,
	"os":             System,
	"hc1":            HighContrast1,
	"highcontrast1":  HighContrast1,
	"contrast-1":     HighContrast1,
	"hc2":            HighContrast2,
	"highcontrast2":  HighContrast2,
	"contrast-2":     HighContrast2,
	"hcwhite":        HighContrastWhite,
	"contrast-white": HighContrastWhite,
	"hcblack":        HighContrastBlack,
	"contrast-black": HighContrastBlack,
	"high-contrast":  DefaultHighContrast,
	"highcontrast":   DefaultHighContrast,
}

// Concrete lists every effective theme in declaration order.
func Concrete() []Theme {
	out := make([]Theme, 0, themeCount-1)
	for t := Light; t < themeCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t Theme) String() string {
	if t < themeCount {
		return themeNames[t]
	}
	return fmt.Sprintf("theme(%d)", uint8(t))
}

// Valid reports whether t is one of the declared values, System included.
func (t Theme) Valid() bool {
	return t < themeCount
}

// IsConcrete reports whether t can be applied to a window.
func (t Theme) IsConcrete() bool {
	return t > System && t < themeCount
}

// IsHighContrast reports whether t is one of the high-contrast themes.
func (t Theme) IsHighContrast() bool {
	return t >= HighContrast1 && t < themeCount
}

// ParseTheme converts a configured name into a Theme.
// Matching is case-insensitive; underscores and spaces are treated as dashes.
func ParseTheme(s string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	for t, name := range themeNames {
		if key == name {
			return Theme(t), nil
		}
	}
	if t, ok := themeAliases[key]; ok {
		return t, nil
	}
	return System, apperrors.New(apperrors.CodeInvalidTheme, fmt.Sprintf("unknown theme %q", s), nil)
}

// HighContrastVariant is the high-contrast mode reported by the OS.
// Values outside the declared set are treated as unrecognized variants.
type HighContrastVariant uint8

const (
	HighContrastNone HighContrastVariant = iota
	HighContrastVariant1
	HighContrastVariant2
	HighContrastVariantWhite
	HighContrastVariantBlack

	// HighContrastUnrecognized marks an active mode the detector could not classify.
	HighContrastUnrecognized HighContrastVariant = 0xff
)

// Theme maps the variant onto its concrete theme. None maps to System;
// anything unrecognized maps to DefaultHighContrast.
func (v HighContrastVariant) Theme() Theme {
	switch v {
	case HighContrastNone:
		return System
	case HighContrastVariant1:
		return HighContrast1
	case HighContrastVariant2:
		return HighContrast2
	case HighContrastVariantWhite:
		return HighContrastWhite
	case HighContrastVariantBlack:
		return HighContrastBlack
	default:
		return DefaultHighContrast
	}
}

func (v HighContrastVariant) String() string {
	if v == HighContrastNone {
		return "none"
	}
	if v.Theme() == DefaultHighContrast && v != HighContrastVariantBlack {
		return fmt.Sprintf("unrecognized(%d)", uint8(v))
	}
	return v.Theme().String()
}

// Category tags an appearance change notification.
type Category uint8

const (
	// CategoryGeneral covers high-contrast and other global appearance changes.
	CategoryGeneral Category = iota + 1
	// CategoryColor covers light/dark color scheme changes.
	CategoryColor
)

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryColor:
		return "color"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// ParseHighContrastVariant maps an OS or config name onto a variant.
// Empty, "none", "off" and "false" mean no high-contrast mode. Any other
// unknown name is an active but unrecognized mode, never an error.
func ParseHighContrastVariant(s string) HighContrastVariant {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "", "none", "off", "false", "0":
		return HighContrastNone
	}
	t, err := ParseTheme(key)
	if err != nil {
		switch key {
		case "1", "#1":
			t = HighContrast1
		case "2", "#2":
			t = HighContrast2
		case "white":
			t = HighContrastWhite
		case "black":
			t = HighContrastBlack
		default:
			return HighContrastUnrecognized
		}
	}
	switch t {
	case HighContrast1:
		return HighContrastVariant1
	case HighContrast2:
		return HighContrastVariant2
	case HighContrastWhite:
		return HighContrastVariantWhite
	case HighContrastBlack:
		return HighContrastVariantBlack
	default:
		return HighContrastUnrecognized
	}
}
