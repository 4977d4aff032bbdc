//go:build linux

package appearance

import (
	"context"
	"os/exec"

	"prism/internal/theme"
)

// System returns the detector for the running OS. On Linux it reads the
// GNOME settings when gsettings is installed and falls back to the terminal.
func System() Detector {
	if _, err := exec.LookPath("gsettings"); err != nil {
		return NewTerminalDetector()
	}
	return DetectorFunc(detectGSettings)
}

func detectGSettings(ctx context.Context) (Snapshot, error) {
	out, err := runCommand(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err != nil {
		return Snapshot{}, detectionError("read gsettings color-scheme", err)
	}
	snap := Snapshot{Base: baseFromGSettings(out)}

	hc, err := runCommand(ctx, "gsettings", "get", "org.gnome.desktop.a11y.interface", "high-contrast")
	if err == nil && gsettingsTrue(hc) {
		// GNOME has a single high-contrast mode with no named variants.
		snap.HighContrast = theme.HighContrastUnrecognized
	}
	return snap, nil
}
