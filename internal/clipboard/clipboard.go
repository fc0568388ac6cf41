// Package clipboard captures and restores the system clipboard around a
// paste-mode insertion. A Manager borrows the clipboard: it snapshots the
// prior text or image, stages new text, and writes the snapshot back.
package clipboard

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the system clipboard cannot be opened,
// read, or written.
var ErrUnavailable = errors.New("clipboard unavailable")

// Kind describes what a Snapshot holds.
type Kind int

const (
	// KindEmpty means the clipboard held neither text nor an image.
	KindEmpty Kind = iota
	// KindText means the clipboard held text.
	KindText
	// KindImage means the clipboard held a PNG-encoded image and no text.
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "empty"
	}
}

// Snapshot is the clipboard state immediately before an insertion.
// At most one of Text and Image is populated, matching Kind.
type Snapshot struct {
	Kind  Kind
	Text  []byte
	Image []byte
}

// Backend is the platform clipboard accessed by a Manager.
//
// ReadText and ReadImage return (nil, nil) when the clipboard holds no
// content of that format. Backends that cannot represent images return
// (nil, nil) from ReadImage and an error from WriteImage.
type Backend interface {
	Name() string
	ReadText() ([]byte, error)
	ReadImage() ([]byte, error)
	WriteText(data []byte) error
	WriteImage(data []byte) error
	Clear() error
}

// Manager implements snapshot/write/restore over a Backend.
type Manager struct {
	backend Backend
}

// NewManager creates a Manager backed by b.
// Panics if b is nil (programmer error).
func NewManager(b Backend) *Manager {
	if b == nil {
		panic("clipboard: NewManager called with nil backend")
	}
	return &Manager{backend: b}
}

// Backend returns the backend the manager writes through.
func (m *Manager) Backend() Backend {
	return m.backend
}

// Snapshot reads the current clipboard: text first, then image, else empty.
func (m *Manager) Snapshot() (Snapshot, error) {
	text, err := m.backend.ReadText()
	if err != nil {
		return Snapshot{}, fmt.Errorf("clipboard: read text: %w", wrap(err))
	}
	if len(text) > 0 {
		return Snapshot{Kind: KindText, Text: text}, nil
	}

	img, err := m.backend.ReadImage()
	if err != nil {
		return Snapshot{}, fmt.Errorf("clipboard: read image: %w", wrap(err))
	}
	if len(img) > 0 {
		return Snapshot{Kind: KindImage, Image: img}, nil
	}

	return Snapshot{Kind: KindEmpty}, nil
}

// Write replaces the clipboard content with text. The clipboard is cleared
// first so no image data from a previous payload survives alongside it.
func (m *Manager) Write(text string) error {
	if err := m.backend.Clear(); err != nil {
		return fmt.Errorf("clipboard: clear: %w", wrap(err))
	}
	if err := m.backend.WriteText([]byte(text)); err != nil {
		return fmt.Errorf("clipboard: write text: %w", wrap(err))
	}
	return nil
}

// Restore writes back the payload captured in snap. An empty snapshot is
// left alone: the clipboard is not cleared to "restore" emptiness.
func (m *Manager) Restore(snap Snapshot) error {
	switch snap.Kind {
	case KindText:
		if err := m.backend.WriteText(snap.Text); err != nil {
			return fmt.Errorf("clipboard: restore text: %w", wrap(err))
		}
	case KindImage:
		if err := m.backend.Clear(); err != nil {
			return fmt.Errorf("clipboard: clear: %w", wrap(err))
		}
		if err := m.backend.WriteImage(snap.Image); err != nil {
			return fmt.Errorf("clipboard: restore image: %w", wrap(err))
		}
	}
	return nil
}

// wrap tags err with ErrUnavailable unless it already carries it.
func wrap(err error) error {
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
