package keys

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// macOS virtual key codes (Carbon HIToolbox Events.h).
const (
	vkV          = 0x09
	vkCommand    = 0x37
	vkLeftArrow  = 0x7B
	vkRightArrow = 0x7C
)

// flagCommand is kCGEventFlagMaskCommand.
const flagCommand = 1 << 20

// keyStroke is one key press-and-release posted at the event-tap layer.
// Flags are set on the key-down event and cleared on key-up. When
// ReleaseMod is set, a key-up for Modifier follows with all flags cleared.
type keyStroke struct {
	Key        uint16
	Flags      uint64
	Modifier   uint16
	ReleaseMod bool
}

// EventTap posts arrow and paste keystrokes directly to the HID event tap,
// skipping robotgo's higher-level key path, which adds latency on macOS and
// can be interrupted by concurrent mouse or keyboard activity. Text still
// goes through robotgo.
type EventTap struct {
	post   func(ks keyStroke) error
	typeFn func(text string)
}

// Compile-time interface satisfaction check.
var _ Injector = (*EventTap)(nil)

// NewEventTap creates an event-tap injector. It returns ErrUnavailable on
// platforms without a CoreGraphics event tap, or when no event source can
// be created.
func NewEventTap() (*EventTap, error) {
	if err := probeEventSource(); err != nil {
		return nil, err
	}
	return &EventTap{
		post:   postKeyStroke,
		typeFn: func(text string) { robotgo.Type(text) },
	}, nil
}

func (e *EventTap) TypeText(text string) error {
	if text == "" {
		return nil
	}
	e.typeFn(text)
	return nil
}

func (e *EventTap) ClickArrow(dir Arrow) error {
	var key uint16
	switch dir {
	case ArrowLeft:
		key = vkLeftArrow
	case ArrowRight:
		key = vkRightArrow
	default:
		return nil
	}
	if err := e.post(keyStroke{Key: key}); err != nil {
		return fmt.Errorf("keys: post %s arrow: %w", dir, err)
	}
	return nil
}

// Paste posts Cmd+V. The Command key is released explicitly afterwards;
// clearing the flag on V's key-up is not documented to release it.
func (e *EventTap) Paste() error {
	ks := keyStroke{
		Key:        vkV,
		Flags:      flagCommand,
		Modifier:   vkCommand,
		ReleaseMod: true,
	}
	if err := e.post(ks); err != nil {
		return fmt.Errorf("keys: post cmd+v: %w", err)
	}
	return nil
}
