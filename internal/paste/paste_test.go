package paste

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chaz8081/textinject/internal/clipboard"
)

// event is one recorded call, stamped with the fake clock.
type event struct {
	name string
	at   time.Duration
}

// harness is a fake clipboard, keystroker and clock sharing one event log.
type harness struct {
	now    time.Duration
	events []event

	clip clipboard.Snapshot // live clipboard content

	snapshotErr error
	writeErr    error
	pasteErr    error
	restoreErr  error
}

func (h *harness) record(name string) {
	h.events = append(h.events, event{name: name, at: h.now})
}

func (h *harness) sleep(d time.Duration) { h.now += d }

func (h *harness) Snapshot() (clipboard.Snapshot, error) {
	h.record("snapshot")
	if h.snapshotErr != nil {
		return clipboard.Snapshot{}, h.snapshotErr
	}
	return h.clip, nil
}

func (h *harness) Write(text string) error {
	h.record("write")
	if h.writeErr != nil {
		return h.writeErr
	}
	h.clip = clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte(text)}
	return nil
}

func (h *harness) Restore(snap clipboard.Snapshot) error {
	h.record("restore")
	if h.restoreErr != nil {
		return h.restoreErr
	}
	h.clip = snap
	return nil
}

func (h *harness) Paste() error {
	h.record("paste")
	return h.pasteErr
}

func (h *harness) names() string {
	var parts []string
	for _, e := range h.events {
		parts = append(parts, e.name)
	}
	return strings.Join(parts, ",")
}

func (h *harness) at(name string) time.Duration {
	for _, e := range h.events {
		if e.name == name {
			return e.at
		}
	}
	return -1
}

func newTestOrchestrator(h *harness, opts ...Option) *Orchestrator {
	opts = append([]Option{WithSleep(h.sleep)}, opts...)
	return New(h, h, opts...)
}

func TestRunRestoresText(t *testing.T) {
	h := &harness{clip: clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("old")}}
	o := newTestOrchestrator(h)

	if err := o.Run("new", Timing{CopyWait: 5 * time.Millisecond, PasteWait: 20 * time.Millisecond}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := h.names(), "snapshot,write,paste,restore"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if h.clip.Kind != clipboard.KindText || string(h.clip.Text) != "old" {
		t.Errorf("clipboard = %v %q, want text %q", h.clip.Kind, h.clip.Text, "old")
	}
}

func TestRunRestoresImage(t *testing.T) {
	img := []byte("\x89PNG\r\n")
	h := &harness{clip: clipboard.Snapshot{Kind: clipboard.KindImage, Image: img}}
	o := newTestOrchestrator(h)

	if err := o.Run("x", DefaultTiming()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.clip.Kind != clipboard.KindImage || string(h.clip.Image) != string(img) {
		t.Errorf("clipboard = %v, want original image", h.clip.Kind)
	}
	if h.clip.Text != nil {
		t.Errorf("clipboard text = %q, want none", h.clip.Text)
	}
}

func TestRunEmptyClipboardNotRestored(t *testing.T) {
	h := &harness{clip: clipboard.Snapshot{Kind: clipboard.KindEmpty}}
	o := newTestOrchestrator(h)

	if err := o.Run("new", DefaultTiming()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := h.names(), "snapshot,write,paste"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}

func TestRunEmptyTextIsBarePaste(t *testing.T) {
	h := &harness{clip: clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("mine")}}
	o := newTestOrchestrator(h)

	if err := o.Run("", DefaultTiming()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := h.names(), "paste"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if string(h.clip.Text) != "mine" {
		t.Errorf("clipboard = %q, want untouched %q", h.clip.Text, "mine")
	}
	if h.now != 0 {
		t.Errorf("waited %s, want no waits", h.now)
	}
}

func TestRunWaitWindows(t *testing.T) {
	timings := []Timing{
		{CopyWait: 0, PasteWait: 0},
		{CopyWait: 5 * time.Millisecond, PasteWait: 20 * time.Millisecond},
		{CopyWait: 50 * time.Millisecond, PasteWait: time.Millisecond},
		DefaultTiming(),
	}
	for _, timing := range timings {
		t.Run(timing.CopyWait.String()+"/"+timing.PasteWait.String(), func(t *testing.T) {
			h := &harness{clip: clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("old")}}
			o := newTestOrchestrator(h)

			if err := o.Run("new", timing); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if d := h.at("paste") - h.at("write"); d < timing.CopyWait {
				t.Errorf("write→paste = %s, want >= %s", d, timing.CopyWait)
			}
			if d := h.at("restore") - h.at("paste"); d < timing.PasteWait {
				t.Errorf("paste→restore = %s, want >= %s", d, timing.PasteWait)
			}
		})
	}
}

func TestRunRealSleepHonorsWaits(t *testing.T) {
	if testing.Short() {
		t.Skip("uses wall-clock sleeps")
	}
	h := &harness{clip: clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("old")}}
	var stamps []time.Time
	rec := &stampingKeys{h: h, stamps: &stamps}
	clip := &stampingClip{h: h, stamps: &stamps}
	o := New(clip, rec)

	timing := Timing{CopyWait: 10 * time.Millisecond, PasteWait: 15 * time.Millisecond}
	if err := o.Run("new", timing); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// stamps: write, paste, restore
	if len(stamps) != 3 {
		t.Fatalf("got %d stamps, want 3", len(stamps))
	}
	if d := stamps[1].Sub(stamps[0]); d < timing.CopyWait {
		t.Errorf("write→paste = %s, want >= %s", d, timing.CopyWait)
	}
	if d := stamps[2].Sub(stamps[1]); d < timing.PasteWait {
		t.Errorf("paste→restore = %s, want >= %s", d, timing.PasteWait)
	}
}

type stampingClip struct {
	h      *harness
	stamps *[]time.Time
}

func (c *stampingClip) Snapshot() (clipboard.Snapshot, error) { return c.h.Snapshot() }

func (c *stampingClip) Write(text string) error {
	*c.stamps = append(*c.stamps, time.Now())
	return c.h.Write(text)
}

func (c *stampingClip) Restore(snap clipboard.Snapshot) error {
	*c.stamps = append(*c.stamps, time.Now())
	return c.h.Restore(snap)
}

type stampingKeys struct {
	h      *harness
	stamps *[]time.Time
}

func (k *stampingKeys) Paste() error {
	*k.stamps = append(*k.stamps, time.Now())
	return k.h.Paste()
}

func TestRunSnapshotError(t *testing.T) {
	h := &harness{snapshotErr: clipboard.ErrUnavailable}
	o := newTestOrchestrator(h)

	err := o.Run("new", DefaultTiming())
	if !errors.Is(err, clipboard.ErrUnavailable) {
		t.Fatalf("Run() error = %v, want ErrUnavailable", err)
	}
	if got, want := h.names(), "snapshot"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}

func TestRunPasteFailureScopedRestore(t *testing.T) {
	keyErr := errors.New("event dropped")
	h := &harness{
		clip:     clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("old")},
		pasteErr: keyErr,
	}
	o := newTestOrchestrator(h)

	err := o.Run("new", DefaultTiming())
	if !errors.Is(err, keyErr) {
		t.Fatalf("Run() error = %v, want %v", err, keyErr)
	}
	if got, want := h.names(), "snapshot,write,paste,restore"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if string(h.clip.Text) != "old" {
		t.Errorf("clipboard = %q, want restored %q", h.clip.Text, "old")
	}
}

func TestRunPasteFailureOnSuccessPolicy(t *testing.T) {
	h := &harness{
		clip:     clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("old")},
		pasteErr: errors.New("event dropped"),
	}
	o := newTestOrchestrator(h, WithRestorePolicy(RestoreOnSuccess))

	if err := o.Run("new", DefaultTiming()); err == nil {
		t.Fatal("Run() should fail")
	}
	if got, want := h.names(), "snapshot,write,paste"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if string(h.clip.Text) != "new" {
		t.Errorf("clipboard = %q, want staged text left behind", h.clip.Text)
	}
}

func TestRunWriteFailureScopedRestore(t *testing.T) {
	h := &harness{
		clip:     clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("old")},
		writeErr: clipboard.ErrUnavailable,
	}
	o := newTestOrchestrator(h)

	err := o.Run("new", DefaultTiming())
	if !errors.Is(err, clipboard.ErrUnavailable) {
		t.Fatalf("Run() error = %v, want ErrUnavailable", err)
	}
	if got, want := h.names(), "snapshot,write,restore"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}

func TestRunRestoreErrorJoined(t *testing.T) {
	keyErr := errors.New("event dropped")
	restoreErr := errors.New("pasteboard busy")
	h := &harness{
		clip:       clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("old")},
		pasteErr:   keyErr,
		restoreErr: restoreErr,
	}
	o := newTestOrchestrator(h)

	err := o.Run("new", DefaultTiming())
	if !errors.Is(err, keyErr) || !errors.Is(err, restoreErr) {
		t.Errorf("Run() error = %v, want both paste and restore errors", err)
	}
}

func TestRunRestoreErrorAfterSuccessfulPaste(t *testing.T) {
	restoreErr := errors.New("pasteboard busy")
	h := &harness{
		clip:       clipboard.Snapshot{Kind: clipboard.KindText, Text: []byte("old")},
		restoreErr: restoreErr,
	}
	o := newTestOrchestrator(h)

	if err := o.Run("new", DefaultTiming()); !errors.Is(err, restoreErr) {
		t.Errorf("Run() error = %v, want %v", err, restoreErr)
	}
}

func TestRunNegativeTiming(t *testing.T) {
	h := &harness{}
	o := newTestOrchestrator(h)

	if err := o.Run("x", Timing{CopyWait: -time.Millisecond}); err == nil {
		t.Error("Run() with negative CopyWait should fail")
	}
	if err := o.Run("x", Timing{PasteWait: -time.Millisecond}); err == nil {
		t.Error("Run() with negative PasteWait should fail")
	}
	if len(h.events) != 0 {
		t.Errorf("events = %s, want none", h.names())
	}
}

func TestParseRestorePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    RestorePolicy
		wantErr bool
	}{
		{"", RestoreScoped, false},
		{"scoped", RestoreScoped, false},
		{"on-success", RestoreOnSuccess, false},
		{"never", RestoreScoped, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRestorePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRestorePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRestorePolicy(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultTiming(t *testing.T) {
	d := DefaultTiming()
	if d.CopyWait != DefaultCopyWait || d.PasteWait != DefaultPasteWait {
		t.Errorf("DefaultTiming() = %+v", d)
	}
	if d.PasteWait <= d.CopyWait {
		t.Errorf("PasteWait (%s) should exceed CopyWait (%s)", d.PasteWait, d.CopyWait)
	}
}
