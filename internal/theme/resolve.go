package theme

// Resolve reconciles the configured preference with the OS appearance.
//
// An active high-contrast mode always wins, whatever the preference says.
// Otherwise System follows the OS base theme and any other preference is
// used as-is. Resolve never returns System.
func Resolve(pref Theme, base Theme, hc HighContrastVariant) Theme {
	if hc != HighContrastNone {
		return hc.Theme()
	}
	if pref == System || !pref.IsConcrete() {
		return normalizeBase(base)
	}
	return pref
}

// normalizeBase keeps Dark and maps anything else to Light.
func normalizeBase(base Theme) Theme {
	if base == Dark {
		return Dark
	}
	return Light
}
