// Command textinject inserts text into the application holding keyboard
// focus.
//
// Usage:
//
//	textinject [-config path] insert [-mode direct|paste] [-arrow none|left|right]
//	           [-copy-wait 5ms] [-paste-wait 20ms] [-delay 0s] TEXT...
//	textinject [-config path] paste [-arrow none|left|right] [-delay 0s]
//	textinject [-config path] watch
//	textinject init
//
// TEXT of "-" reads the text from stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chaz8081/textinject/internal/config"
	"github.com/chaz8081/textinject/internal/hotkey"
	"github.com/chaz8081/textinject/internal/inject"
	"github.com/chaz8081/textinject/internal/keys"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/textinject/config.yaml)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if cmd == "init" {
		runInit()
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal("config", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("config validation", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	inserter, err := inject.NewFromConfig(cfg)
	if err != nil {
		fatal("inject", err)
	}
	slog.Debug("inserter ready", "backend", cfg.Inject.Backend, "mode", cfg.Inject.Mode)

	switch cmd {
	case "insert":
		err = runInsert(inserter, args)
	case "paste":
		err = runPaste(inserter, args)
	case "watch":
		err = runWatch(inserter, cfg)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(cmd, err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-config path] insert|paste|watch|init [flags] [TEXT...]\n", os.Args[0])
	flag.PrintDefaults()
}

func fatal(step string, err error) {
	slog.Error(step+" failed", "error", err)
	os.Exit(1)
}

// runInsert parses insert flags on top of the config defaults and inserts
// the text once.
func runInsert(ins *inject.Inserter, args []string) error {
	def := ins.Defaults()

	fs := flag.NewFlagSet("insert", flag.ExitOnError)
	mode := fs.String("mode", def.Mode.String(), "insertion mode: direct or paste")
	arrow := fs.String("arrow", def.PreClickArrow.String(), "arrow key to click first: none, left or right")
	copyWait := fs.Duration("copy-wait", def.Timing.CopyWait, "wait after staging text on the clipboard")
	pasteWait := fs.Duration("paste-wait", def.Timing.PasteWait, "wait after the paste keystroke before restoring")
	delay := fs.Duration("delay", 0, "wait before inserting, to give time to focus a field")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := readText(fs.Args(), os.Stdin)
	if err != nil {
		return err
	}

	opts := def
	if opts.Mode, err = inject.ParseMode(*mode); err != nil {
		return err
	}
	if opts.PreClickArrow, err = keys.ParseArrow(*arrow); err != nil {
		return err
	}
	opts.Timing.CopyWait = *copyWait
	opts.Timing.PasteWait = *pasteWait

	time.Sleep(*delay)

	start := time.Now()
	if err := ins.Insert(text, opts); err != nil {
		return err
	}
	slog.Info("text inserted", "mode", opts.Mode, "chars", len([]rune(text)), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// runPaste sends a bare paste keystroke without touching the clipboard.
func runPaste(ins *inject.Inserter, args []string) error {
	fs := flag.NewFlagSet("paste", flag.ExitOnError)
	arrow := fs.String("arrow", "none", "arrow key to click first: none, left or right")
	delay := fs.Duration("delay", 0, "wait before pasting, to give time to focus a field")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir, err := keys.ParseArrow(*arrow)
	if err != nil {
		return err
	}

	time.Sleep(*delay)

	if err := ins.Paste(inject.PasteOptions{PreClickArrow: dir}); err != nil {
		return err
	}
	slog.Info("paste sent")
	return nil
}

// runWatch inserts configured snippets when their hotkeys are pressed.
func runWatch(ins *inject.Inserter, cfg *config.Config) error {
	if len(cfg.Hotkeys) == 0 {
		return fmt.Errorf("no hotkeys configured")
	}

	bindings := make([]hotkey.Binding, len(cfg.Hotkeys))
	opts := make([]inject.Options, len(cfg.Hotkeys))
	for i, hk := range cfg.Hotkeys {
		o, err := inject.HotkeyOptions(ins.Defaults(), hk)
		if err != nil {
			return fmt.Errorf("hotkeys[%d]: %w", i, err)
		}
		bindings[i] = hotkey.Binding{Keys: hk.Keys}
		opts[i] = o
		slog.Info("hotkey registered", "keys", strings.Join(hk.Keys, "+"), "mode", o.Mode)
	}

	listener := hotkey.NewListener(bindings)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go listener.Start()
	slog.Info("watching for hotkeys, Ctrl+C to quit")

	events := listener.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				slog.Info("hotkey listener stopped")
				return nil
			}
			hk := cfg.Hotkeys[ev.Index]
			if err := ins.Insert(hk.Text, opts[ev.Index]); err != nil {
				slog.Error("snippet insertion failed", "keys", strings.Join(hk.Keys, "+"), "error", err)
				continue
			}
			slog.Debug("snippet inserted", "keys", strings.Join(hk.Keys, "+"))

		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig.String())
			// Exit directly to avoid gohook's C cleanup crash.
			// The OS reclaims the event hook on process exit.
			os.Exit(0)
		}
	}
}

func runInit() {
	path, err := config.WriteDefault()
	if err != nil {
		fatal("init", err)
	}
	if path == "" {
		fmt.Printf("Config already exists at %s\n", config.DefaultConfigPath())
		return
	}
	fmt.Printf("Wrote default config to %s\n", path)
}

// readText joins args with spaces. A single "-" reads stdin instead.
func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		return cfg, nil
	}

	return config.Default(), nil
}
