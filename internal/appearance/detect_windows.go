//go:build windows

package appearance

import (
	"context"
	"strconv"

	"prism/internal/theme"

	"golang.org/x/sys/windows/registry"
)

const (
	personalizeKey  = `SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	currentThemeKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Themes`
	highContrastKey = `Control Panel\Accessibility\HighContrast`

	// hcfHighContrastOn is HCF_HIGHCONTRASTON from winuser.h.
	hcfHighContrastOn = 0x1
)

// System returns the detector for the running OS.
func System() Detector {
	return DetectorFunc(detectRegistry)
}

func detectRegistry(context.Context) (Snapshot, error) {
	snap := Snapshot{Base: theme.Light}

	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return snap, detectionError("open personalize key", err)
	}
	useLight, _, err := k.GetIntegerValue("AppsUseLightTheme")
	k.Close()
	if err == nil && useLight == 0 {
		snap.Base = theme.Dark
	}

	if highContrastActive() {
		snap.HighContrast = currentHighContrastVariant()
	}
	return snap, nil
}

func highContrastActive() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, highContrastKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	flags, _, err := k.GetStringValue("Flags")
	if err != nil {
		return false
	}
	n, err := strconv.ParseUint(flags, 10, 32)
	if err != nil {
		return false
	}
	return n&hcfHighContrastOn != 0
}

func currentHighContrastVariant() theme.HighContrastVariant {
	k, err := registry.OpenKey(registry.CURRENT_USER, currentThemeKey, registry.QUERY_VALUE)
	if err != nil {
		return theme.HighContrastUnrecognized
	}
	defer k.Close()

	path, _, err := k.GetStringValue("CurrentTheme")
	if err != nil {
		return theme.HighContrastUnrecognized
	}
	return variantFromThemeFile(path)
}
