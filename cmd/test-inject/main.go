// Command test-inject is a manual test for text insertion.
// It waits 3 seconds, then inserts test text, optionally clicking an
// arrow key first. Focus a text editor before the countdown finishes,
// and copy something first to check that paste mode restores it.
//
// Usage:
//
//	go run ./cmd/test-inject [--mode direct|paste] [--arrow none|left|right] [--backend auto|generic|eventtap|keybd]
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/chaz8081/textinject/internal/config"
	"github.com/chaz8081/textinject/internal/inject"
)

func main() {
	mode := flag.String("mode", "direct", "insert mode: direct or paste")
	arrow := flag.String("arrow", "none", "arrow key to click first: none, left or right")
	backend := flag.String("backend", "auto", "key injector backend: auto, generic, eventtap or keybd")
	flag.Parse()

	text := "Hello from textinject!"

	cfg := config.Default()
	cfg.Inject.Mode = *mode
	cfg.Inject.PreClickArrow = *arrow
	cfg.Inject.Backend = *backend
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	inserter, err := inject.NewFromConfig(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Will insert %q using %q mode (%s backend) in 3 seconds...\n", text, *mode, *backend)
	fmt.Println("Focus a text editor now!")

	for i := 3; i > 0; i-- {
		fmt.Printf("%d...\n", i)
		time.Sleep(time.Second)
	}

	if err := inserter.Inject(text); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("\nDone!")
}
