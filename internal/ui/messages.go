package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// drainMsg asks the UI loop to run queued theme work.
type drainMsg struct{}

// ConfigChangedMsg reports that the settings files changed on disk.
type ConfigChangedMsg struct{}

type dumpCompleteMsg struct {
	path string
	err  error
}

type copyCompleteMsg struct {
	err error
}

// Sender is the part of tea.Program the Waker needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Waker turns theme queue wake-ups into drainMsgs for a running program.
type Waker struct {
	mu      sync.Mutex
	program Sender
}

// Attach sets the program that receives drain requests.
func (w *Waker) Attach(p Sender) {
	w.mu.Lock()
	w.program = p
	w.mu.Unlock()
}

// Wake schedules a drain without blocking the caller. Wake-ups before Attach
// are dropped; the queue keeps the work and Init drains it.
func (w *Waker) Wake() {
	w.mu.Lock()
	p := w.program
	w.mu.Unlock()
	if p == nil {
		return
	}
	go p.Send(drainMsg{})
}
