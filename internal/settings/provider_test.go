package settings

import (
	"sync"
	"testing"

	"prism/internal/config"
	"prism/internal/theme"
)

func TestConfiguredTheme(t *testing.T) {
	tests := []struct {
		value string
		want  theme.Theme
	}{
		{value: "system", want: theme.System},
		{value: "Dark", want: theme.Dark},
		{value: "light", want: theme.Light},
		{value: "hcwhite", want: theme.HighContrastWhite},
		{value: "sepia", want: theme.System},
		{value: "", want: theme.System},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Cleanup(config.ResetForTesting(t))
			if err := config.Set(config.KeyTheme, tt.value); err != nil {
				t.Fatalf("config.Set: %v", err)
			}
			if got := (Provider{}).ConfiguredTheme(); got != tt.want {
				t.Fatalf("ConfiguredTheme() with %q = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestProviderSatisfiesSettingsProvider(t *testing.T) {
	var _ theme.SettingsProvider = Provider{}
}

func TestConfiguredThemeWhilePreferenceChanges(t *testing.T) {
	t.Cleanup(config.ResetForTesting(t))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			next := theme.Light
			if i%2 == 1 {
				next = theme.Dark
			}
			if err := config.Set(config.KeyTheme, next.String()); err != nil {
				t.Errorf("config.Set: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			switch got := (Provider{}).ConfiguredTheme(); got {
			case theme.System, theme.Light, theme.Dark:
			default:
				t.Errorf("ConfiguredTheme() = %s", got)
				return
			}
		}
	}()
	wg.Wait()
}
