// Package appearance watches the OS light/dark and high-contrast settings and
// reports changes as theme notifications.
package appearance

import (
	"context"
	"sync"
	"time"

	"prism/internal/debug"
	"prism/internal/theme"
)

// DefaultPollInterval is the default interval between OS appearance polls.
const DefaultPollInterval = 2 * time.Second

// Snapshot is one reading of the OS appearance.
type Snapshot struct {
	Base         theme.Theme
	HighContrast theme.HighContrastVariant
}

// Detector reads the current OS appearance.
type Detector interface {
	Detect(ctx context.Context) (Snapshot, error)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(ctx context.Context) (Snapshot, error)

// Detect calls f(ctx).
func (f DetectorFunc) Detect(ctx context.Context) (Snapshot, error) { return f(ctx) }

// Source polls a Detector and notifies subscribers when the reading changes.
// Listeners are called on the polling goroutine.
type Source struct {
	detector Detector
	interval time.Duration

	mu        sync.RWMutex
	last      Snapshot
	listeners map[int]func(theme.Category)
	nextID    int

	ctx       context.Context
	cancel    context.CancelFunc
	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewSource creates a Source and takes an initial reading.
func NewSource(detector Detector, interval time.Duration) *Source {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Source{
		detector:  detector,
		interval:  interval,
		last:      Snapshot{Base: theme.Light},
		listeners: make(map[int]func(theme.Category)),
		ctx:       ctx,
		cancel:    cancel,
	}
	if snap, err := detector.Detect(ctx); err != nil {
		debug.Logf("appearance: initial detection failed: %v", err)
	} else {
		s.last = normalize(snap)
	}
	return s
}

// BaseTheme returns the last observed light/dark setting.
func (s *Source) BaseTheme() theme.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last.Base
}

// HighContrast returns the last observed high-contrast variant.
func (s *Source) HighContrast() theme.HighContrastVariant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last.HighContrast
}

// Subscribe registers fn for change notifications.
func (s *Source) Subscribe(fn func(theme.Category)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Start begins polling in the background. Calling it again has no effect.
func (s *Source) Start() {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.pollLoop()
	})
}

// Stop ends polling. Safe to call multiple times, and before Start.
func (s *Source) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

func (s *Source) pollLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Poll()
		}
	}
}

// Poll takes one reading and notifies listeners about what changed.
// A high-contrast change is reported as CategoryGeneral, a light/dark
// change as CategoryColor.
func (s *Source) Poll() {
	snap, err := s.detector.Detect(s.ctx)
	if err != nil {
		debug.Logf("appearance: detection failed: %v", err)
		return
	}
	snap = normalize(snap)

	s.mu.Lock()
	prev := s.last
	s.last = snap
	listeners := make([]func(theme.Category), 0, len(s.listeners))
	for id := 1; id <= s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	var categories []theme.Category
	if snap.HighContrast != prev.HighContrast {
		categories = append(categories, theme.CategoryGeneral)
	}
	if snap.Base != prev.Base {
		categories = append(categories, theme.CategoryColor)
	}
	for _, c := range categories {
		debug.Logf("appearance: %s change (base=%s high-contrast=%s)", c, snap.Base, snap.HighContrast)
		for _, fn := range listeners {
			fn(c)
		}
	}
}

func normalize(s Snapshot) Snapshot {
	if s.Base != theme.Dark {
		s.Base = theme.Light
	}
	return s
}
