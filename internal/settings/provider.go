// Package settings exposes the configured theme preference to the theme manager.
package settings

import (
	"context"

	"prism/internal/config"
	"prism/internal/debug"
	"prism/internal/theme"
)

// Provider reads the theme preference from the config store.
type Provider struct{}

// ConfiguredTheme returns the configured preference. Unknown names are
// logged and treated as System.
func (Provider) ConfiguredTheme() theme.Theme {
	raw := config.GetString(config.KeyTheme)
	pref, err := theme.ParseTheme(raw)
	if err != nil {
		debug.Logf("settings: %v, following the OS", err)
		return theme.System
	}
	return pref
}

// Watch calls onChange whenever the config files change on disk. It blocks
// until ctx is done.
func (Provider) Watch(ctx context.Context, onChange func()) error {
	return config.Watch(ctx, onChange)
}
