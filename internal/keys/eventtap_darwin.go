//go:build darwin

package keys

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

#define TAP_OK 0
#define TAP_NO_SOURCE 1
#define TAP_NO_EVENT 2

static int probeSource(void) {
	CGEventSourceRef src = CGEventSourceCreate(kCGEventSourceStateHIDSystemState);
	if (src == NULL) {
		return TAP_NO_SOURCE;
	}
	CFRelease(src);
	return TAP_OK;
}

static int postKey(CGEventSourceRef src, CGKeyCode key, bool down, CGEventFlags flags) {
	CGEventRef ev = CGEventCreateKeyboardEvent(src, key, down);
	if (ev == NULL) {
		return TAP_NO_EVENT;
	}
	CGEventSetFlags(ev, flags);
	CGEventPost(kCGHIDEventTap, ev);
	CFRelease(ev);
	return TAP_OK;
}

static int tapKey(CGKeyCode key, uint64_t flags, CGKeyCode mod, int releaseMod) {
	CGEventSourceRef src = CGEventSourceCreate(kCGEventSourceStateHIDSystemState);
	if (src == NULL) {
		return TAP_NO_SOURCE;
	}
	int rc = postKey(src, key, true, (CGEventFlags)flags);
	if (rc == TAP_OK) {
		rc = postKey(src, key, false, 0);
	}
	if (rc == TAP_OK && releaseMod) {
		rc = postKey(src, mod, false, 0);
	}
	CFRelease(src);
	return rc;
}
*/
import "C"

import "fmt"

func probeEventSource() error {
	if C.probeSource() != C.TAP_OK {
		return fmt.Errorf("keys: create CGEventSource: %w", ErrUnavailable)
	}
	return nil
}

func postKeyStroke(ks keyStroke) error {
	release := C.int(0)
	if ks.ReleaseMod {
		release = 1
	}
	switch C.tapKey(C.CGKeyCode(ks.Key), C.uint64_t(ks.Flags), C.CGKeyCode(ks.Modifier), release) {
	case C.TAP_OK:
		return nil
	case C.TAP_NO_SOURCE:
		return ErrUnavailable
	default:
		return ErrEventFailed
	}
}
