package appearance

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	apperrors "prism/internal/errors"
	"prism/internal/theme"

	"github.com/muesli/termenv"
)

// runCommand is a function variable to allow overriding in tests.
var runCommand = func(ctx context.Context, name string, args ...string) (string, error) {
	//nolint:gosec // G204: fixed OS query commands
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// Overrides force parts of the reading. Empty fields are detected normally.
type Overrides struct {
	Base         string
	HighContrast string
}

// WithOverrides wraps d so configured values replace detected ones.
func WithOverrides(d Detector, o Overrides) Detector {
	base := strings.TrimSpace(o.Base)
	hc := strings.TrimSpace(o.HighContrast)
	if base == "" && hc == "" {
		return d
	}
	return DetectorFunc(func(ctx context.Context) (Snapshot, error) {
		snap, err := d.Detect(ctx)
		if err != nil && (base == "" || hc == "") {
			return snap, err
		}
		if base != "" {
			if t, perr := theme.ParseTheme(base); perr == nil && t == theme.Dark {
				snap.Base = theme.Dark
			} else {
				snap.Base = theme.Light
			}
		}
		if hc != "" {
			snap.HighContrast = theme.ParseHighContrastVariant(hc)
		}
		return snap, nil
	})
}

// TerminalDetector reports the terminal background as the base theme.
// The terminal is queried once; later calls return the cached answer so
// polling never competes with the UI for terminal input.
type TerminalDetector struct {
	once sync.Once
	dark bool

	// hasDarkBackground is replaced in tests.
	hasDarkBackground func() bool
}

// NewTerminalDetector creates a detector backed by termenv.
func NewTerminalDetector() *TerminalDetector {
	return &TerminalDetector{
		hasDarkBackground: func() bool {
			return termenv.NewOutput(os.Stdout).HasDarkBackground()
		},
	}
}

// Detect implements Detector. High contrast is read from PRISM_HIGH_CONTRAST.
func (d *TerminalDetector) Detect(context.Context) (Snapshot, error) {
	d.once.Do(func() {
		d.dark = d.hasDarkBackground()
	})
	snap := Snapshot{Base: theme.Light}
	if d.dark {
		snap.Base = theme.Dark
	}
	snap.HighContrast = theme.ParseHighContrastVariant(os.Getenv("PRISM_HIGH_CONTRAST"))
	return snap, nil
}

// variantFromThemeFile maps a Windows theme file name onto a variant.
func variantFromThemeFile(path string) theme.HighContrastVariant {
	name := strings.ToLower(filepath.Base(strings.ReplaceAll(path, `\`, "/")))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	switch name {
	case "hc1":
		return theme.HighContrastVariant1
	case "hc2":
		return theme.HighContrastVariant2
	case "hcwhite":
		return theme.HighContrastVariantWhite
	case "hcblack":
		return theme.HighContrastVariantBlack
	default:
		return theme.HighContrastUnrecognized
	}
}

// baseFromGSettings parses `gsettings get org.gnome.desktop.interface color-scheme`.
func baseFromGSettings(out string) theme.Theme {
	if strings.Contains(strings.Trim(out, "'\" "), "dark") {
		return theme.Dark
	}
	return theme.Light
}

// gsettingsTrue parses a gsettings boolean.
func gsettingsTrue(out string) bool {
	return strings.TrimSpace(out) == "true"
}

// baseFromAppleInterfaceStyle parses `defaults read -g AppleInterfaceStyle`.
// The key is absent (and the command fails) in light mode.
func baseFromAppleInterfaceStyle(out string, err error) theme.Theme {
	if err == nil && strings.EqualFold(strings.TrimSpace(out), "dark") {
		return theme.Dark
	}
	return theme.Light
}

func detectionError(msg string, err error) error {
	return apperrors.New(apperrors.CodeDetectionFailed, msg, err)
}
