package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prism/internal/debug"
	"prism/internal/theme"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const maxHistory = 8

// Controller is the part of theme.Manager the preview drives.
type Controller interface {
	CurrentTheme() theme.Theme
	UpdateTheme()
	Subscribe(h theme.ChangeHandler) (unsubscribe func())
}

// Config wires the preview to the theme manager and its collaborators.
type Config struct {
	Manager Controller
	Host    *Host
	Assets  *Assets
	Queue   *theme.Queue

	// Preference reads the configured preference; SetPreference changes it for this run.
	Preference    func() theme.Theme
	SetPreference func(theme.Theme) error

	Markdown bool
	DumpPath string
	Version  string

	// CopyText defaults to the system clipboard.
	CopyText func(string) error
}

// App is the bubbletea model of the theme preview window.
type App struct {
	cfg  Config
	keys KeyMap
	help help.Model

	width  int
	height int

	status         string
	history        []string
	renderMarkdown func(string) string
	unsubscribe    func()
}

// NewApp builds the preview and subscribes it to theme changes.
func NewApp(cfg Config) (*App, error) {
	switch {
	case cfg.Manager == nil:
		return nil, errors.New("ui: theme manager is required")
	case cfg.Host == nil:
		return nil, errors.New("ui: resource host is required")
	case cfg.Assets == nil:
		return nil, errors.New("ui: assets are required")
	case cfg.Queue == nil:
		return nil, errors.New("ui: dispatch queue is required")
	}
	if cfg.Preference == nil {
		cfg.Preference = func() theme.Theme { return theme.System }
	}
	if cfg.CopyText == nil {
		cfg.CopyText = clipboard.WriteAll
	}
	if strings.TrimSpace(cfg.DumpPath) == "" {
		cfg.DumpPath = filepath.Join(os.TempDir(), "prism-resource-keys.txt")
	}

	m := &App{
		cfg:   cfg,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		width: 80,
	}
	m.rebuildMarkdown()
	m.unsubscribe = cfg.Manager.Subscribe(m.onThemeChanged)
	return m, nil
}

// Close stops listening for theme changes.
func (m *App) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init drains theme work queued before the program started.
func (m *App) Init() tea.Cmd {
	return func() tea.Msg { return drainMsg{} }
}

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildMarkdown()
		return m, nil
	case drainMsg:
		if ran := m.cfg.Queue.Drain(); ran > 0 {
			debug.Logf("ui: drained %d theme task(s)", ran)
		}
		return m, nil
	case ConfigChangedMsg:
		m.status = "Settings reloaded."
		m.cfg.Manager.UpdateTheme()
		return m, nil
	case dumpCompleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Dump failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Resource keys written to %s.", msg.path)
		}
		return m, nil
	case copyCompleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.status = "Copied resource stack to clipboard."
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.CycleTheme):
		m.cyclePreference()
	case key.Matches(msg, m.keys.Refresh):
		m.status = "Re-resolving theme."
		m.cfg.Manager.UpdateTheme()
	case key.Matches(msg, m.keys.DumpKeys):
		// Snapshot on the UI goroutine; the write happens off it.
		keys, path := m.cfg.Host.snapshotKeys(), m.cfg.DumpPath
		return m, func() tea.Msg {
			return dumpCompleteMsg{path: path, err: DumpKeys(keys, path)}
		}
	case key.Matches(msg, m.keys.Copy):
		text := joinResources(m.cfg.Host.Resources())
		copyText := m.cfg.CopyText
		return m, func() tea.Msg {
			return copyCompleteMsg{err: copyText(text)}
		}
	}
	return m, nil
}

func (m *App) cyclePreference() {
	next := nextPreference(m.cfg.Preference())
	if m.cfg.SetPreference != nil {
		if err := m.cfg.SetPreference(next); err != nil {
			m.status = fmt.Sprintf("Could not set preference: %v", err)
			return
		}
	}
	m.status = fmt.Sprintf("Preference set to %s.", next)
	m.cfg.Manager.UpdateTheme()
}

// onThemeChanged runs on the UI goroutine during the manager's apply step.
func (m *App) onThemeChanged(newTheme, oldTheme theme.Theme) {
	icons := m.cfg.Assets.Icons()
	entry := fmt.Sprintf("%s %s %s %s", icons.Changed, oldTheme, icons.Arrow, newTheme)
	m.history = append(m.history, entry)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.status = fmt.Sprintf("Theme changed to %s.", newTheme)
	m.rebuildMarkdown()
}

func (m *App) rebuildMarkdown() {
	m.renderMarkdown = buildMarkdownRenderer(m.cfg.Assets.MarkdownStyle(), m.cfg.Markdown, m.width-4)
}

// nextPreference cycles System, then every concrete theme, then back.
func nextPreference(cur theme.Theme) theme.Theme {
	order := append([]theme.Theme{theme.System}, theme.Concrete()...)
	for i, t := range order {
		if t == cur {
			return order[(i+1)%len(order)]
		}
	}
	return theme.System
}

func joinResources(ids []theme.ResourceID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, "\n")
}
