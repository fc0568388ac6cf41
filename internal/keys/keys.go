// Package keys synthesizes keyboard input into the focused application.
//
// Three Injector implementations share the same surface:
//
//	Generic   robotgo for text, arrows and the paste shortcut
//	EventTap  macOS only; posts arrow and Cmd+V events straight to the HID event tap
//	Bonding   keybd_event for arrows and the paste shortcut, robotgo for text
//
// All of them leave the target in the same state; they differ in latency
// and in how they behave under concurrent user input.
package keys

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when the OS input-simulation subsystem
	// cannot be reached.
	ErrUnavailable = errors.New("input injector unavailable")
	// ErrEventFailed is returned when an individual key event fails to post.
	ErrEventFailed = errors.New("key event injection failed")
)

// Arrow selects an arrow key to click before inserting text.
type Arrow int

const (
	// ArrowNone clicks nothing.
	ArrowNone Arrow = iota
	// ArrowLeft clicks the left arrow key.
	ArrowLeft
	// ArrowRight clicks the right arrow key.
	ArrowRight
)

func (a Arrow) String() string {
	switch a {
	case ArrowLeft:
		return "left"
	case ArrowRight:
		return "right"
	default:
		return "none"
	}
}

// ParseArrow parses "left", "right", "none" or "".
func ParseArrow(s string) (Arrow, error) {
	switch s {
	case "", "none":
		return ArrowNone, nil
	case "left":
		return ArrowLeft, nil
	case "right":
		return ArrowRight, nil
	default:
		return ArrowNone, fmt.Errorf("keys: unknown arrow %q (want none, left or right)", s)
	}
}

// Injector emits synthetic input events.
type Injector interface {
	// TypeText emits text as one logical insertion.
	TypeText(text string) error
	// ClickArrow presses and releases a single arrow key.
	ClickArrow(dir Arrow) error
	// Paste emits the platform paste shortcut (Cmd+V on macOS, Ctrl+V elsewhere).
	Paste() error
}

// Backend names accepted by New.
const (
	BackendAuto     = "auto"
	BackendGeneric  = "generic"
	BackendEventTap = "eventtap"
	BackendBonding  = "keybd"
)

// New returns the injector for backend on the platform goos.
// "auto" selects EventTap on darwin and Generic everywhere else.
func New(backend, goos string) (Injector, error) {
	switch backend {
	case BackendAuto, "":
		if goos == "darwin" {
			return newEventTap()
		}
		return NewGeneric(goos), nil
	case BackendGeneric:
		return NewGeneric(goos), nil
	case BackendEventTap:
		return newEventTap()
	case BackendBonding:
		b, err := NewBonding(goos)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("keys: unknown backend %q", backend)
	}
}

// newEventTap avoids returning a typed nil inside the Injector interface.
func newEventTap() (Injector, error) {
	e, err := NewEventTap()
	if err != nil {
		return nil, err
	}
	return e, nil
}

// pasteModifier returns the robotgo modifier name for the paste shortcut.
func pasteModifier(goos string) string {
	if goos == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
