package theme

import (
	"sync"

	"prism/internal/debug"
	apperrors "prism/internal/errors"
)

// Option configures a Manager.
type Option func(*Manager)

// WithDispatcher sets how apply work reaches the UI goroutine.
// The default is Immediate.
func WithDispatcher(d Dispatcher) Option {
	return func(m *Manager) {
		if d != nil {
			m.dispatch = d
		}
	}
}

// WithAssetLoader sets the loader told about every theme change.
func WithAssetLoader(l AssetLoader) Option {
	return func(m *Manager) {
		m.assets = l
	}
}

type subscription struct {
	id      int
	handler ChangeHandler
}

// Manager keeps a window's resources in step with the effective theme.
//
// The current theme is System until the first UpdateTheme or appearance
// notification has been applied.
type Manager struct {
	settings SettingsProvider
	source   AppearanceSource
	host     ResourceHost
	assets   AssetLoader
	dispatch Dispatcher

	mu      sync.RWMutex
	current Theme

	subsMu sync.Mutex
	subs   []subscription
	nextID int

	unsubscribe func()
	closeOnce   sync.Once
}

// New creates a Manager and registers it with the appearance source.
func New(settings SettingsProvider, source AppearanceSource, host ResourceHost, opts ...Option) (*Manager, error) {
	switch {
	case settings == nil:
		return nil, apperrors.New(apperrors.CodeMissingCollaborator, "theme: settings provider is nil", nil)
	case source == nil:
		return nil, apperrors.New(apperrors.CodeMissingCollaborator, "theme: appearance source is nil", nil)
	case host == nil:
		return nil, apperrors.New(apperrors.CodeMissingCollaborator, "theme: resource host is nil", nil)
	}

	m := &Manager{
		settings: settings,
		source:   source,
		host:     host,
		dispatch: Immediate,
		current:  System,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.unsubscribe = source.Subscribe(m.OnAppearanceChanged)
	return m, nil
}

// CurrentTheme returns the effective theme, or System before the first apply.
func (m *Manager) CurrentTheme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe registers h for ThemeChanged events. Handlers run on the UI
// goroutine in subscription order. The returned func removes h and may be
// called more than once.
func (m *Manager) Subscribe(h ChangeHandler) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	m.subsMu.Lock()
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscription{id: id, handler: h})
	m.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { m.removeSubscription(id) })
	}
}

func (m *Manager) removeSubscription(id int) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for i, s := range m.subs {
		if s.id == id {
			m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
			return
		}
	}
}

// OnAppearanceChanged handles an OS appearance notification. It may be
// called from any goroutine.
func (m *Manager) OnAppearanceChanged(category Category) {
	switch category {
	case CategoryGeneral:
		m.UpdateTheme()
	case CategoryColor:
		// High-contrast themes are keyed off a separate signal. System means
		// nothing has been applied yet, so the pending apply may hold a stale base.
		if cur := m.CurrentTheme(); cur == System || cur == Light || cur == Dark {
			m.UpdateTheme()
			return
		}
		debug.Logf("theme: ignoring %s change while %s is active", category, m.CurrentTheme())
	default:
		debug.Logf("theme: ignoring unknown appearance category %s", category)
	}
}

// UpdateTheme re-resolves the effective theme and schedules it to be applied
// on the UI goroutine. It does not wait for the apply to run.
func (m *Manager) UpdateTheme() {
	pref := m.settings.ConfiguredTheme()
	base := m.source.BaseTheme()
	hc := m.source.HighContrast()
	next := Resolve(pref, base, hc)
	debug.Logf("theme: resolved %s (preference=%s base=%s high-contrast=%s)", next, pref, base, hc)

	m.dispatch.Dispatch(func() {
		if next == m.CurrentTheme() {
			debug.Logf("theme: %s already applied", next)
			return
		}
		m.apply(next)
	})
}

// apply swaps the host resources to t and announces the change.
// It must run on the UI goroutine and only when t differs from the current theme.
func (m *Manager) apply(t Theme) {
	m.host.ClearResources()
	for _, id := range Resources(t) {
		m.host.AppendResource(id)
	}

	m.mu.Lock()
	old := m.current
	m.current = t
	m.mu.Unlock()

	if m.assets != nil {
		m.assets.NotifyThemeChanged(t)
	}

	debug.Logf("theme: applied %s (was %s)", t, old)
	for _, s := range m.snapshotSubscribers() {
		s.handler(t, old)
	}
}

func (m *Manager) snapshotSubscribers() []subscription {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	out := make([]subscription, len(m.subs))
	copy(out, m.subs)
	return out
}

// Close unregisters from the appearance source. It is safe to call more
// than once and on a nil Manager.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	m.closeOnce.Do(func() {
		if m.unsubscribe != nil {
			m.unsubscribe()
			m.unsubscribe = nil
		}
	})
	return nil
}
