package appearance

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"prism/internal/theme"
)

type scriptedDetector struct {
	mu    sync.Mutex
	snap  Snapshot
	err   error
	calls int
}

func (d *scriptedDetector) Detect(context.Context) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return d.snap, d.err
}

func (d *scriptedDetector) set(snap Snapshot, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snap = snap
	d.err = err
}

type recorder struct {
	mu   sync.Mutex
	seen []theme.Category
}

func (r *recorder) record(c theme.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, c)
}

func (r *recorder) categories() []theme.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]theme.Category(nil), r.seen...)
}

func TestNewSourceTakesInitialReading(t *testing.T) {
	d := &scriptedDetector{snap: Snapshot{Base: theme.Dark, HighContrast: theme.HighContrastVariant2}}
	s := NewSource(d, time.Hour)
	t.Cleanup(s.Stop)

	if s.BaseTheme() != theme.Dark {
		t.Fatalf("BaseTheme() = %s, want dark", s.BaseTheme())
	}
	if s.HighContrast() != theme.HighContrastVariant2 {
		t.Fatalf("HighContrast() = %s", s.HighContrast())
	}
}

func TestNewSourceDefaultsOnDetectionError(t *testing.T) {
	d := &scriptedDetector{err: errors.New("no display")}
	s := NewSource(d, 0)
	t.Cleanup(s.Stop)

	if s.BaseTheme() != theme.Light || s.HighContrast() != theme.HighContrastNone {
		t.Fatalf("expected light/none defaults, got %s/%s", s.BaseTheme(), s.HighContrast())
	}
	if s.interval != DefaultPollInterval {
		t.Fatalf("interval = %v, want default", s.interval)
	}
}

func TestPollReportsCategories(t *testing.T) {
	tests := []struct {
		name string
		next Snapshot
		want []theme.Category
	}{
		{name: "unchanged", next: Snapshot{Base: theme.Light}, want: nil},
		{name: "color", next: Snapshot{Base: theme.Dark}, want: []theme.Category{theme.CategoryColor}},
		{name: "high contrast", next: Snapshot{Base: theme.Light, HighContrast: theme.HighContrastVariantBlack}, want: []theme.Category{theme.CategoryGeneral}},
		{
			name: "both",
			next: Snapshot{Base: theme.Dark, HighContrast: theme.HighContrastVariant1},
			want: []theme.Category{theme.CategoryGeneral, theme.CategoryColor},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &scriptedDetector{snap: Snapshot{Base: theme.Light}}
			s := NewSource(d, time.Hour)
			t.Cleanup(s.Stop)
			rec := &recorder{}
			s.Subscribe(rec.record)

			d.set(tt.next, nil)
			s.Poll()

			if got := rec.categories(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("categories = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPollKeepsLastReadingOnError(t *testing.T) {
	d := &scriptedDetector{snap: Snapshot{Base: theme.Dark}}
	s := NewSource(d, time.Hour)
	t.Cleanup(s.Stop)
	rec := &recorder{}
	s.Subscribe(rec.record)

	d.set(Snapshot{}, errors.New("registry locked"))
	s.Poll()

	if s.BaseTheme() != theme.Dark {
		t.Fatalf("BaseTheme() = %s, want last good reading", s.BaseTheme())
	}
	if len(rec.categories()) != 0 {
		t.Fatal("failed poll must not notify")
	}
}

func TestPollNormalizesBase(t *testing.T) {
	d := &scriptedDetector{snap: Snapshot{Base: theme.HighContrast1}}
	s := NewSource(d, time.Hour)
	t.Cleanup(s.Stop)
	if s.BaseTheme() != theme.Light {
		t.Fatalf("BaseTheme() = %s, want light", s.BaseTheme())
	}
}

func TestUnsubscribe(t *testing.T) {
	d := &scriptedDetector{snap: Snapshot{Base: theme.Light}}
	s := NewSource(d, time.Hour)
	t.Cleanup(s.Stop)
	rec := &recorder{}
	unsubscribe := s.Subscribe(rec.record)
	unsubscribe()
	unsubscribe()

	d.set(Snapshot{Base: theme.Dark}, nil)
	s.Poll()
	if len(rec.categories()) != 0 {
		t.Fatal("unsubscribed listener was notified")
	}
}

func TestStartPollsUntilStopped(t *testing.T) {
	d := &scriptedDetector{snap: Snapshot{Base: theme.Light}}
	s := NewSource(d, 5*time.Millisecond)
	changed := make(chan theme.Category, 4)
	s.Subscribe(func(c theme.Category) {
		select {
		case changed <- c:
		default:
		}
	})

	s.Start()
	s.Start()
	d.set(Snapshot{Base: theme.Dark}, nil)

	select {
	case c := <-changed:
		if c != theme.CategoryColor {
			t.Fatalf("category = %s, want color", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll")
	}

	s.Stop()
	s.Stop()
}

func TestStopBeforeStart(t *testing.T) {
	s := NewSource(&scriptedDetector{}, time.Hour)
	s.Stop()
	s.Stop()
}
