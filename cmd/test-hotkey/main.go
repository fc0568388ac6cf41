// Command test-hotkey is a manual test for the global hotkey listener.
// Run it, then press Ctrl+Shift+1 or Ctrl+Shift+2 to see events.
// Press Ctrl+C to exit.
//
// Usage:
//
//	go run ./cmd/test-hotkey
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chaz8081/textinject/internal/hotkey"
)

func main() {
	bindings := []hotkey.Binding{
		{Keys: []string{"ctrl", "shift", "1"}},
		{Keys: []string{"ctrl", "shift", "2"}},
	}
	fmt.Println("Listening for Ctrl+Shift+1 and Ctrl+Shift+2...")
	fmt.Println("Press Ctrl+C to exit.")

	listener := hotkey.NewListener(bindings)

	// Handle Ctrl+C
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Println("\nShutting down...")
		listener.Stop()
	}()

	// Read events
	go func() {
		for ev := range listener.Events() {
			fmt.Printf(">>> binding %d (%s)\n", ev.Index, strings.Join(bindings[ev.Index].Keys, "+"))
		}
		fmt.Println("Event channel closed.")
	}()

	// Blocks until stopped
	listener.Start()
	fmt.Println("Done.")
}
