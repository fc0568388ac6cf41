// Package hotkey listens for global key combos using gohook and reports
// which configured binding fired.
package hotkey

import (
	"sync"

	hook "github.com/robotn/gohook"
)

// Binding is a key combo to listen for. Keys are lowercase gohook key
// names (e.g., ["ctrl", "shift", "m"]).
type Binding struct {
	Keys []string
}

// Event is emitted on the channel returned by Events when a binding's
// combo is released. Firing on release keeps the combo's modifiers from
// leaking into whatever the receiver types next.
type Event struct {
	// Index is the position of the binding passed to NewListener.
	Index int
}

// Listener manages a set of global hotkeys.
type Listener struct {
	bindings []Binding
	ch       chan Event
	done     chan struct{}
	once     sync.Once

	register func(when uint8, cmds []string, cb func(hook.Event))
}

// NewListener creates a Listener for the given bindings.
func NewListener(bindings []Binding) *Listener {
	return &Listener{
		bindings: bindings,
		ch:       make(chan Event, 16),
		done:     make(chan struct{}),
		register: hook.Register,
	}
}

// Events returns the channel that receives hotkey events.
// The channel is closed when the listener stops.
func (l *Listener) Events() <-chan Event {
	return l.ch
}

// Start registers every binding and begins listening.
// This function blocks until Stop is called. Run it in a goroutine.
func (l *Listener) Start() {
	l.registerAll()

	evChan := hook.Start()
	go func() {
		<-l.done
		hook.End()
	}()
	<-hook.Process(evChan)
	close(l.ch)
}

func (l *Listener) registerAll() {
	for i, b := range l.bindings {
		l.register(hook.KeyUp, b.Keys, func(hook.Event) {
			l.emit(i)
		})
	}
}

// emit sends without blocking; presses arriving while the channel is full
// are dropped.
func (l *Listener) emit(index int) {
	select {
	case l.ch <- Event{Index: index}:
	default:
	}
}

// Stop terminates the hotkey listener.
// It is safe to call multiple times.
func (l *Listener) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}
