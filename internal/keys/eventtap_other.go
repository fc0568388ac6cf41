//go:build !darwin

package keys

import "fmt"

func probeEventSource() error {
	return fmt.Errorf("keys: event tap requires macOS: %w", ErrUnavailable)
}

func postKeyStroke(keyStroke) error {
	return ErrUnavailable
}
