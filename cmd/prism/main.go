package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"prism/internal/appearance"
	"prism/internal/config"
	"prism/internal/debug"
	"prism/internal/settings"
	"prism/internal/theme"
	"prism/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		return 1
	}

	cli, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if cli.version {
		printVersion()
		return 0
	}
	if err := config.ApplyOverrides(cli.overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying flags: %v\n", err)
		return 1
	}

	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
	}
	defer debug.Close()

	runtime := runtimeFromConfig()
	detector := appearance.WithOverrides(appearance.System(), runtime.overrides)
	err = run(context.Background(), runtime, detector, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type cliOptions struct {
	version   bool
	overrides map[string]any
}

// parseFlags turns explicitly set flags into config overrides. Flags left at
// their defaults do not override config files or the environment.
func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	fs := flag.NewFlagSet("prism", flag.ContinueOnError)
	fs.SetOutput(output)

	versionFlag := fs.Bool("version", false, "Print version information and exit")
	themeFlag := fs.String("theme", config.GetString(config.KeyTheme), "Theme preference (system, light, dark, high-contrast-1, high-contrast-2, high-contrast-white, high-contrast-black)")
	debugFlag := fs.Bool("debug", config.GetBool(config.KeyDebug), "Write a debug log to ~/.prism/debug.log")
	pollFlag := fs.Duration("poll-interval", config.GetDuration(config.KeyPollInterval), "Interval between OS appearance checks")
	markdownFlag := fs.Bool("markdown", config.GetBool(config.KeyMarkdownEnabled), "Render the theme description as markdown")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	visited := map[string]struct{}{}
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	opts := cliOptions{version: *versionFlag, overrides: map[string]any{}}
	if _, ok := visited["theme"]; ok {
		pref, err := theme.ParseTheme(*themeFlag)
		if err != nil {
			return cliOptions{}, err
		}
		opts.overrides[config.KeyTheme] = pref.String()
	}
	if _, ok := visited["debug"]; ok {
		opts.overrides[config.KeyDebug] = *debugFlag
	}
	if _, ok := visited["poll-interval"]; ok {
		if *pollFlag <= 0 {
			return cliOptions{}, fmt.Errorf("poll-interval must be positive, got %s", *pollFlag)
		}
		opts.overrides[config.KeyPollInterval] = *pollFlag
	}
	if _, ok := visited["markdown"]; ok {
		opts.overrides[config.KeyMarkdownEnabled] = *markdownFlag
	}
	return opts, nil
}

type runtimeOptions struct {
	pollInterval time.Duration
	markdown     bool
	overrides    appearance.Overrides
}

func runtimeFromConfig() runtimeOptions {
	interval := config.GetDuration(config.KeyPollInterval)
	if interval <= 0 {
		interval = appearance.DefaultPollInterval
	}
	return runtimeOptions{
		pollInterval: interval,
		markdown:     config.GetBool(config.KeyMarkdownEnabled),
		overrides: appearance.Overrides{
			Base:         config.GetString(config.KeyAppearanceBase),
			HighContrast: config.GetString(config.KeyAppearanceHighContrast),
		},
	}
}

type programRunner interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

type programFactory func(*ui.App) programRunner

// run wires the theme manager to the preview and blocks until the program exits.
func run(ctx context.Context, opts runtimeOptions, detector appearance.Detector, factory programFactory) error {
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}

	source := appearance.NewSource(detector, opts.pollInterval)
	defer source.Stop()

	prefs := settings.Provider{}
	host := ui.NewHost(ui.DefaultCatalog())
	assets := ui.NewAssets(lipgloss.DefaultRenderer())
	waker := &ui.Waker{}
	queue := theme.NewQueue(waker.Wake)

	mgr, err := theme.New(prefs, source, host,
		theme.WithDispatcher(queue),
		theme.WithAssetLoader(assets),
	)
	if err != nil {
		return fmt.Errorf("initialize theme manager: %w", err)
	}
	defer func() { _ = mgr.Close() }()

	app, err := ui.NewApp(ui.Config{
		Manager:    mgr,
		Host:       host,
		Assets:     assets,
		Queue:      queue,
		Preference: prefs.ConfiguredTheme,
		SetPreference: func(t theme.Theme) error {
			return config.Set(config.KeyTheme, t.String())
		},
		Markdown: opts.markdown,
		Version:  Version,
	})
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	defer app.Close()

	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	waker.Attach(prog)

	// Queued until the program's Init drains it.
	mgr.UpdateTheme()
	source.Start()

	watchCtx, cancel := context.WithCancel(ctx)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		err := prefs.Watch(watchCtx, func() {
			prog.Send(ui.ConfigChangedMsg{})
		})
		if err != nil {
			debug.Logf("config watch stopped: %v", err)
		}
	}()
	defer func() {
		cancel()
		<-watchDone
	}()

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
