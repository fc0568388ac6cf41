package clipboard

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// Backend names accepted by Open.
const (
	BackendAuto   = "auto"
	BackendSystem = "system"
	BackendText   = "text"
)

// Open returns the named backend. "auto" tries the backends from autoOrder
// for the running OS and returns the first one that initializes.
func Open(name string) (Backend, error) {
	switch name {
	case BackendSystem:
		sys, err := NewSystem()
		if err != nil {
			return nil, err
		}
		return sys, nil
	case BackendText:
		txt, err := NewTextOnly()
		if err != nil {
			return nil, err
		}
		return txt, nil
	case BackendAuto, "":
		var errs []error
		for _, candidate := range autoOrder(runtime.GOOS) {
			b, err := Open(candidate)
			if err == nil {
				return b, nil
			}
			slog.Debug("clipboard backend unavailable", "backend", candidate, "error", err)
			errs = append(errs, err)
		}
		return nil, errors.Join(errs...)
	default:
		return nil, fmt.Errorf("clipboard: unknown backend %q", name)
	}
}

// autoOrder lists the backends "auto" tries, most preferred first.
//
// On linux, X11 selections live only as long as the owning process. The
// native backend owns the selection from inside this process, so a paste
// restored just before a one-shot CLI exits is lost. The text-only
// backend hands the data to xclip, xsel or wl-copy, which keep serving it.
func autoOrder(goos string) []string {
	if goos == "linux" {
		return []string{BackendText, BackendSystem}
	}
	return []string{BackendSystem, BackendText}
}
