// Package paste inserts text by staging it on the clipboard, sending the
// paste shortcut, and putting the user's clipboard back afterwards.
package paste

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chaz8081/textinject/internal/clipboard"
)

const (
	// DefaultCopyWait is how long to wait after staging text before sending
	// the paste keystroke. Some clipboard backends publish asynchronously.
	DefaultCopyWait = 5 * time.Millisecond
	// DefaultPasteWait is how long to wait after the paste keystroke before
	// restoring the clipboard. The target reads the clipboard some time after
	// the event is posted; restoring earlier pastes the old content.
	DefaultPasteWait = 20 * time.Millisecond
)

// Timing holds the two wait windows of a paste-mode insertion.
type Timing struct {
	CopyWait  time.Duration
	PasteWait time.Duration
}

// DefaultTiming returns DefaultCopyWait and DefaultPasteWait.
func DefaultTiming() Timing {
	return Timing{CopyWait: DefaultCopyWait, PasteWait: DefaultPasteWait}
}

// Validate rejects negative waits.
func (t Timing) Validate() error {
	if t.CopyWait < 0 {
		return fmt.Errorf("paste: copy wait must be >= 0, got %s", t.CopyWait)
	}
	if t.PasteWait < 0 {
		return fmt.Errorf("paste: paste wait must be >= 0, got %s", t.PasteWait)
	}
	return nil
}

// RestorePolicy controls what happens to the clipboard when a step fails
// after the clipboard was overwritten.
type RestorePolicy int

const (
	// RestoreScoped restores the snapshot on every exit once the clipboard
	// has been written, including when the paste keystroke fails.
	RestoreScoped RestorePolicy = iota
	// RestoreOnSuccess restores only after a successful paste keystroke.
	// A failed paste leaves the staged text on the clipboard.
	RestoreOnSuccess
)

func (p RestorePolicy) String() string {
	if p == RestoreOnSuccess {
		return "on-success"
	}
	return "scoped"
}

// ParseRestorePolicy parses "scoped" or "on-success".
func ParseRestorePolicy(s string) (RestorePolicy, error) {
	switch s {
	case "", "scoped":
		return RestoreScoped, nil
	case "on-success":
		return RestoreOnSuccess, nil
	default:
		return RestoreScoped, fmt.Errorf("paste: unknown restore policy %q (want scoped or on-success)", s)
	}
}

// Clipboard is the clipboard surface the orchestrator needs.
// *clipboard.Manager satisfies it.
type Clipboard interface {
	Snapshot() (clipboard.Snapshot, error)
	Write(text string) error
	Restore(snap clipboard.Snapshot) error
}

// Keystroker sends the paste shortcut. keys.Injector satisfies it.
type Keystroker interface {
	Paste() error
}

// Orchestrator runs paste-mode insertions. It holds no per-call state;
// each Run owns its own session.
type Orchestrator struct {
	clip   Clipboard
	keys   Keystroker
	policy RestorePolicy
	sleep  func(time.Duration)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRestorePolicy sets the restore policy. The default is RestoreScoped.
func WithRestorePolicy(p RestorePolicy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithSleep replaces time.Sleep for the wait windows.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

// New creates an Orchestrator.
// Panics if clip or keys is nil (programmer error).
func New(clip Clipboard, keys Keystroker, opts ...Option) *Orchestrator {
	if clip == nil || keys == nil {
		panic("paste: New called with nil clipboard or keystroker")
	}
	o := &Orchestrator{
		clip:   clip,
		keys:   keys,
		policy: RestoreScoped,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run pastes text into the focused application.
//
// An empty text skips the clipboard entirely and sends a bare paste
// keystroke, for callers that staged the clipboard themselves.
func (o *Orchestrator) Run(text string, timing Timing) error {
	if err := timing.Validate(); err != nil {
		return err
	}
	s := &session{text: text, timing: timing}
	return o.run(s)
}

func (o *Orchestrator) run(s *session) (err error) {
	defer func() {
		if err != nil {
			s.transition(StateFailed)
			return
		}
		s.transition(StateDone)
	}()

	if s.text == "" {
		s.transition(StatePasting)
		if err := o.keys.Paste(); err != nil {
			return fmt.Errorf("paste: send keystroke: %w", err)
		}
		return nil
	}

	s.transition(StateSnapshotting)
	snap, err := o.clip.Snapshot()
	if err != nil {
		return fmt.Errorf("paste: snapshot: %w", err)
	}
	s.snapshot = snap

	s.transition(StateStaging)
	if err := o.clip.Write(s.text); err != nil {
		// A failed write may still have cleared the clipboard.
		return o.finish(s, fmt.Errorf("paste: stage text: %w", err), false)
	}
	o.sleep(s.timing.CopyWait)

	s.transition(StatePasting)
	if err := o.keys.Paste(); err != nil {
		return o.finish(s, fmt.Errorf("paste: send keystroke: %w", err), false)
	}

	return o.finish(s, nil, true)
}

// finish restores the snapshot when the policy calls for it. pasted
// reports whether the paste keystroke was sent; only then is the restore
// delayed by PasteWait.
func (o *Orchestrator) finish(s *session, stepErr error, pasted bool) error {
	if stepErr != nil && o.policy == RestoreOnSuccess {
		return stepErr
	}
	if s.snapshot.Kind == clipboard.KindEmpty {
		return stepErr
	}

	s.transition(StateRestoring)
	if pasted {
		o.sleep(s.timing.PasteWait)
	}
	if err := o.clip.Restore(s.snapshot); err != nil {
		restoreErr := fmt.Errorf("paste: restore clipboard: %w", err)
		if stepErr != nil {
			return errors.Join(stepErr, restoreErr)
		}
		return restoreErr
	}
	return stepErr
}

// State is a step of a paste-mode insertion.
type State int

const (
	StateIdle State = iota
	StateSnapshotting
	StateStaging
	StatePasting
	StateRestoring
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:         "idle",
	StateSnapshotting: "snapshotting",
	StateStaging:      "staging",
	StatePasting:      "pasting",
	StateRestoring:    "restoring",
	StateDone:         "done",
	StateFailed:       "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// session is the transient state of one paste-mode insertion.
type session struct {
	text     string
	timing   Timing
	state    State
	snapshot clipboard.Snapshot
}

func (s *session) transition(to State) {
	slog.Debug("paste session", "from", s.state, "to", to, "snapshot", s.snapshot.Kind)
	s.state = to
}
