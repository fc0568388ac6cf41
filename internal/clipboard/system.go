package clipboard

import (
	"fmt"
	"sync"

	xclip "golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// xclip.Write returns a nil channel when the platform rejects the write.
var nativeWrite = xclip.Write

// System is the native clipboard via golang.design/x/clipboard.
// It supports both text and PNG image payloads.
type System struct{}

// Compile-time interface satisfaction check.
var _ Backend = (*System)(nil)

// NewSystem initializes the native clipboard. Initialization happens once
// per process; later calls return the first result.
func NewSystem() (*System, error) {
	initOnce.Do(func() {
		initErr = xclip.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, initErr)
	}
	return &System{}, nil
}

func (s *System) Name() string { return "system" }

func (s *System) ReadText() ([]byte, error) {
	return xclip.Read(xclip.FmtText), nil
}

func (s *System) ReadImage() ([]byte, error) {
	return xclip.Read(xclip.FmtImage), nil
}

func (s *System) WriteText(data []byte) error {
	return write(xclip.FmtText, data)
}

func (s *System) WriteImage(data []byte) error {
	return write(xclip.FmtImage, data)
}

// Clear empties the clipboard by writing a zero-length text payload,
// which drops any other format the previous owner offered.
func (s *System) Clear() error {
	return write(xclip.FmtText, []byte{})
}

func write(f xclip.Format, data []byte) error {
	if nativeWrite(f, data) == nil {
		return fmt.Errorf("%w: native write rejected", ErrUnavailable)
	}
	return nil
}
