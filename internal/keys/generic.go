package keys

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Generic injects input through robotgo's synthesized-event primitives.
type Generic struct {
	goos   string
	typeFn func(text string)
	tapFn  func(key string, mods ...interface{}) error
}

// Compile-time interface satisfaction check.
var _ Injector = (*Generic)(nil)

// NewGeneric creates a robotgo-backed injector for goos.
func NewGeneric(goos string) *Generic {
	return &Generic{
		goos:   goos,
		typeFn: func(text string) { robotgo.Type(text) },
		tapFn:  robotgo.KeyTap,
	}
}

// TypeText types the whole string in one call. robotgo emits unicode
// events directly rather than replaying a human-timed key sequence.
func (g *Generic) TypeText(text string) error {
	if text == "" {
		return nil
	}
	g.typeFn(text)
	return nil
}

// ClickArrow taps the left or right arrow key. ArrowNone is a no-op.
func (g *Generic) ClickArrow(dir Arrow) error {
	var key string
	switch dir {
	case ArrowLeft:
		key = "left"
	case ArrowRight:
		key = "right"
	default:
		return nil
	}
	if err := g.tapFn(key); err != nil {
		return fmt.Errorf("keys: tap %s: %w: %w", key, ErrEventFailed, err)
	}
	return nil
}

// Paste taps V with the platform paste modifier held.
func (g *Generic) Paste() error {
	mod := pasteModifier(g.goos)
	if err := g.tapFn("v", mod); err != nil {
		return fmt.Errorf("keys: tap %s+v: %w: %w", mod, ErrEventFailed, err)
	}
	return nil
}
