package clipboard

import (
	"errors"

	cb "github.com/atotto/clipboard"
)

// errNoImages is returned by TextOnly.WriteImage.
var errNoImages = errors.New("backend does not support images")

// TextOnly is a text-only clipboard via github.com/atotto/clipboard, which
// shells out to pbcopy, xclip, xsel, or wl-copy. It is the preferred
// backend on linux and the fallback elsewhere when the native clipboard
// cannot initialize (headless builds, no cgo).
type TextOnly struct{}

// Compile-time interface satisfaction check.
var _ Backend = (*TextOnly)(nil)

// NewTextOnly returns a TextOnly backend, or ErrUnavailable when no
// clipboard utility is installed.
func NewTextOnly() (*TextOnly, error) {
	if cb.Unsupported {
		return nil, ErrUnavailable
	}
	return &TextOnly{}, nil
}

func (t *TextOnly) Name() string { return "text-only" }

func (t *TextOnly) ReadText() ([]byte, error) {
	s, err := cb.ReadAll()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// ReadImage always reports no image.
func (t *TextOnly) ReadImage() ([]byte, error) {
	return nil, nil
}

func (t *TextOnly) WriteText(data []byte) error {
	return cb.WriteAll(string(data))
}

func (t *TextOnly) WriteImage(data []byte) error {
	return errNoImages
}

func (t *TextOnly) Clear() error {
	return cb.WriteAll("")
}
