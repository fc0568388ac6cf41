package keys

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"github.com/micmonay/keybd_event"
)

// keyPresser is the subset of keybd_event.KeyBonding used by Bonding.
type keyPresser interface {
	Clear()
	SetKeys(keys ...int)
	HasCTRL(b bool)
	HasSuper(b bool)
	Launching() error
}

// Bonding sends arrows and the paste shortcut through keybd_event, which
// drives uinput on Linux, SendInput on Windows and CGEvent on macOS.
// Text goes through robotgo.
//
// On Linux the uinput device is created by NewBonding; compositors can take
// a moment to pick it up, so the first keystroke may be lost if sent
// immediately after start.
type Bonding struct {
	goos   string
	kb     keyPresser
	typeFn func(text string)
}

// Compile-time interface satisfaction check.
var _ Injector = (*Bonding)(nil)

// NewBonding creates a keybd_event-backed injector for goos.
func NewBonding(goos string) (*Bonding, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keys: new key bonding: %w: %w", ErrUnavailable, err)
	}
	return &Bonding{
		goos:   goos,
		kb:     &kb,
		typeFn: func(text string) { robotgo.Type(text) },
	}, nil
}

func (b *Bonding) TypeText(text string) error {
	if text == "" {
		return nil
	}
	b.typeFn(text)
	return nil
}

func (b *Bonding) ClickArrow(dir Arrow) error {
	var vk int
	switch dir {
	case ArrowLeft:
		vk = keybd_event.VK_LEFT
	case ArrowRight:
		vk = keybd_event.VK_RIGHT
	default:
		return nil
	}
	b.kb.Clear()
	b.kb.SetKeys(vk)
	if err := b.kb.Launching(); err != nil {
		return fmt.Errorf("keys: launch %s arrow: %w: %w", dir, ErrEventFailed, err)
	}
	return nil
}

func (b *Bonding) Paste() error {
	b.kb.Clear()
	b.kb.SetKeys(keybd_event.VK_V)
	if b.goos == "darwin" {
		b.kb.HasSuper(true)
	} else {
		b.kb.HasCTRL(true)
	}
	if err := b.kb.Launching(); err != nil {
		return fmt.Errorf("keys: launch paste: %w: %w", ErrEventFailed, err)
	}
	return nil
}
