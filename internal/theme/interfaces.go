package theme

// SettingsProvider exposes the configured theme preference. It may return System.
type SettingsProvider interface {
	ConfiguredTheme() Theme
}

// AppearanceSource reports the OS appearance and notifies on changes.
// Callbacks may run on any goroutine.
type AppearanceSource interface {
	BaseTheme() Theme
	HighContrast() HighContrastVariant
	Subscribe(fn func(Category)) (unsubscribe func())
}

// ResourceHost is the ordered resource-dictionary list attached to a window.
// It must only be mutated on the UI goroutine.
type ResourceHost interface {
	ClearResources()
	AppendResource(id ResourceID)
}

// AssetLoader refreshes theme-dependent assets such as icons.
type AssetLoader interface {
	NotifyThemeChanged(t Theme)
}

// ChangeHandler receives the new and previous effective theme.
type ChangeHandler func(newTheme, oldTheme Theme)
