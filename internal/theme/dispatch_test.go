package theme

import (
	"reflect"
	"sync"
	"testing"
)

func TestImmediateRunsInline(t *testing.T) {
	ran := false
	Immediate.Dispatch(func() { ran = true })
	if !ran {
		t.Fatal("Immediate should run work before returning")
	}
}

func TestQueueRunsInOrderOnDrain(t *testing.T) {
	wakes := 0
	q := NewQueue(func() { wakes++ })

	var order []int
	for i := 1; i <= 3; i++ {
		q.Dispatch(func() { order = append(order, i) })
	}
	if len(order) != 0 {
		t.Fatal("work must not run before Drain")
	}
	if wakes != 3 {
		t.Fatalf("expected 3 wakes, got %d", wakes)
	}
	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}

	if ran := q.Drain(); ran != 3 {
		t.Fatalf("Drain() ran %d, want 3", ran)
	}
	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Fatalf("order = %v, want [1 2 3]", order)
	}
	if q.Drain() != 0 {
		t.Fatal("second Drain should find nothing")
	}
}

func TestQueueDrainsWorkQueuedWhileDraining(t *testing.T) {
	q := NewQueue(nil)
	var order []string
	q.Dispatch(func() {
		order = append(order, "first")
		q.Dispatch(func() { order = append(order, "nested") })
	})
	q.Dispatch(func() { order = append(order, "second") })

	if ran := q.Drain(); ran != 3 {
		t.Fatalf("Drain() ran %d, want 3", ran)
	}
	if !reflect.DeepEqual(order, []string{"first", "second", "nested"}) {
		t.Fatalf("order = %v", order)
	}
}

func TestQueueDispatchFromManyGoroutines(t *testing.T) {
	q := NewQueue(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Dispatch(func() {})
		}()
	}
	wg.Wait()
	if ran := q.Drain(); ran != 50 {
		t.Fatalf("Drain() ran %d, want 50", ran)
	}
}

func TestQueueIgnoresNil(t *testing.T) {
	q := NewQueue(func() { t.Fatal("wake should not fire for nil work") })
	q.Dispatch(nil)
	if q.Len() != 0 {
		t.Fatal("nil work must not be queued")
	}
}
