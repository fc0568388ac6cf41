package inject

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/chaz8081/textinject/internal/clipboard"
	"github.com/chaz8081/textinject/internal/config"
	"github.com/chaz8081/textinject/internal/keys"
	"github.com/chaz8081/textinject/internal/paste"
)

// OptionsFromConfig converts the inject config section to Options.
func OptionsFromConfig(c config.InjectConfig) (Options, error) {
	mode, err := ParseMode(c.Mode)
	if err != nil {
		return Options{}, err
	}
	arrow, err := keys.ParseArrow(c.PreClickArrow)
	if err != nil {
		return Options{}, err
	}
	timing := paste.Timing{CopyWait: c.CopyWait(), PasteWait: c.PasteWait()}
	if err := timing.Validate(); err != nil {
		return Options{}, err
	}
	return Options{Mode: mode, PreClickArrow: arrow, Timing: timing}, nil
}

// HotkeyOptions returns base with the hotkey's mode and arrow overrides applied.
func HotkeyOptions(base Options, hk config.HotkeyConfig) (Options, error) {
	opts := base
	if hk.Mode != "" {
		mode, err := ParseMode(hk.Mode)
		if err != nil {
			return Options{}, err
		}
		opts.Mode = mode
	}
	if hk.PreClickArrow != "" {
		arrow, err := keys.ParseArrow(hk.PreClickArrow)
		if err != nil {
			return Options{}, err
		}
		opts.PreClickArrow = arrow
	}
	return opts, nil
}

// NewFromConfig builds an Inserter for the running platform. The clipboard
// is opened on first paste-mode use, so direct mode works on machines
// without a usable clipboard.
func NewFromConfig(cfg *config.Config) (*Inserter, error) {
	defaults, err := OptionsFromConfig(cfg.Inject)
	if err != nil {
		return nil, err
	}
	policy, err := paste.ParseRestorePolicy(cfg.Inject.Restore)
	if err != nil {
		return nil, err
	}

	k, err := keys.New(cfg.Inject.Backend, runtime.GOOS)
	if err != nil {
		return nil, fmt.Errorf("inject: open %s injector: %w", cfg.Inject.Backend, err)
	}

	clip := &lazyClipboard{open: func() (clipboard.Backend, error) {
		return clipboard.Open(cfg.Clipboard.Backend)
	}}
	orch := paste.New(clip, k, paste.WithRestorePolicy(policy))

	return NewInserter(k, orch, defaults), nil
}

// lazyClipboard opens its backend on first use and caches the result,
// including a failure.
type lazyClipboard struct {
	open func() (clipboard.Backend, error)

	once sync.Once
	mgr  *clipboard.Manager
	err  error
}

// Compile-time interface satisfaction check.
var _ paste.Clipboard = (*lazyClipboard)(nil)

func (l *lazyClipboard) manager() (*clipboard.Manager, error) {
	l.once.Do(func() {
		b, err := l.open()
		if err != nil {
			l.err = err
			return
		}
		l.mgr = clipboard.NewManager(b)
	})
	return l.mgr, l.err
}

func (l *lazyClipboard) Snapshot() (clipboard.Snapshot, error) {
	m, err := l.manager()
	if err != nil {
		return clipboard.Snapshot{}, err
	}
	return m.Snapshot()
}

func (l *lazyClipboard) Write(text string) error {
	m, err := l.manager()
	if err != nil {
		return err
	}
	return m.Write(text)
}

func (l *lazyClipboard) Restore(snap clipboard.Snapshot) error {
	m, err := l.manager()
	if err != nil {
		return err
	}
	return m.Restore(snap)
}
