//go:build darwin

package appearance

import (
	"context"
	"strings"

	"prism/internal/theme"
)

// System returns the detector for the running OS.
func System() Detector {
	return DetectorFunc(detectDefaults)
}

func detectDefaults(ctx context.Context) (Snapshot, error) {
	out, err := runCommand(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	snap := Snapshot{Base: baseFromAppleInterfaceStyle(out, err)}

	contrast, err := runCommand(ctx, "defaults", "read", "com.apple.universalaccess", "increaseContrast")
	if err == nil && strings.TrimSpace(contrast) == "1" {
		// macOS has a single "increase contrast" switch with no named variants.
		snap.HighContrast = theme.HighContrastUnrecognized
	}
	return snap, nil
}
