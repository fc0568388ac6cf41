// Package inject inserts text into the application holding keyboard focus,
// either by synthesizing the text directly or by pasting it through the
// clipboard.
package inject

import (
	"fmt"
	"sync"

	"github.com/chaz8081/textinject/internal/clipboard"
	"github.com/chaz8081/textinject/internal/keys"
	"github.com/chaz8081/textinject/internal/paste"
)

// Errors surfaced by Insert and Paste. Match with errors.Is.
var (
	ErrInjectorUnavailable  = keys.ErrUnavailable
	ErrClipboardUnavailable = clipboard.ErrUnavailable
	ErrEventInjectionFailed = keys.ErrEventFailed
)

// Mode selects the insertion strategy.
type Mode int

const (
	// ModeDirect synthesizes the text as input events.
	ModeDirect Mode = iota
	// ModePaste stages the text on the clipboard and sends the paste shortcut.
	ModePaste
)

func (m Mode) String() string {
	if m == ModePaste {
		return "paste"
	}
	return "direct"
}

// ParseMode parses "direct" or "paste". "type" is accepted as an alias
// for "direct".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "direct", "type":
		return ModeDirect, nil
	case "paste":
		return ModePaste, nil
	default:
		return ModeDirect, fmt.Errorf("inject: unknown mode %q (want direct or paste)", s)
	}
}

// Options controls one Insert call.
type Options struct {
	Mode          Mode
	PreClickArrow keys.Arrow
	Timing        paste.Timing
}

// DefaultOptions returns direct mode, no arrow click, and default timing.
func DefaultOptions() Options {
	return Options{
		Mode:          ModeDirect,
		PreClickArrow: keys.ArrowNone,
		Timing:        paste.DefaultTiming(),
	}
}

// PasteOptions controls one Paste call.
type PasteOptions struct {
	PreClickArrow keys.Arrow
}

// TextInjector is anything that can put text into the focused application.
type TextInjector interface {
	Inject(text string) error
}

// Inserter chooses between direct and paste insertion.
//
// Calls on one Inserter are serialized: the clipboard and focus target are
// process-wide, and overlapping paste sessions would overwrite each
// other's snapshot. Other processes touching the clipboard are not guarded
// against.
type Inserter struct {
	mu       sync.Mutex
	keys     keys.Injector
	paste    *paste.Orchestrator
	defaults Options
}

// Compile-time interface satisfaction check.
var _ TextInjector = (*Inserter)(nil)

// NewInserter creates an Inserter. defaults is used by Inject.
// Panics if k or orch is nil (programmer error).
func NewInserter(k keys.Injector, orch *paste.Orchestrator, defaults Options) *Inserter {
	if k == nil || orch == nil {
		panic("inject: NewInserter called with nil injector or orchestrator")
	}
	return &Inserter{keys: k, paste: orch, defaults: defaults}
}

// Defaults returns the options used by Inject.
func (i *Inserter) Defaults() Options {
	return i.defaults
}

// Insert clicks opts.PreClickArrow once if set, then inserts text using
// opts.Mode. Direct mode never touches the clipboard.
func (i *Inserter) Insert(text string, opts Options) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.keys.ClickArrow(opts.PreClickArrow); err != nil {
		return fmt.Errorf("inject: pre-click: %w", err)
	}

	switch opts.Mode {
	case ModePaste:
		if err := i.paste.Run(text, opts.Timing); err != nil {
			return fmt.Errorf("inject: %w", err)
		}
	default:
		if err := i.keys.TypeText(text); err != nil {
			return fmt.Errorf("inject: type text: %w", err)
		}
	}
	return nil
}

// Paste clicks opts.PreClickArrow once if set, then sends a bare paste
// keystroke. The clipboard is neither read nor written.
func (i *Inserter) Paste(opts PasteOptions) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.keys.ClickArrow(opts.PreClickArrow); err != nil {
		return fmt.Errorf("inject: pre-click: %w", err)
	}
	if err := i.keys.Paste(); err != nil {
		return fmt.Errorf("inject: paste keystroke: %w", err)
	}
	return nil
}

// Inject inserts text with the Inserter's default options.
// Empty text is a no-op.
func (i *Inserter) Inject(text string) error {
	if text == "" {
		return nil
	}
	return i.Insert(text, i.defaults)
}
