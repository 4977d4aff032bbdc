//go:build !linux && !darwin && !windows

package appearance

// System returns the detector for the running OS.
func System() Detector {
	return NewTerminalDetector()
}
