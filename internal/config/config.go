package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Inject    InjectConfig    `yaml:"inject"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Hotkeys   []HotkeyConfig  `yaml:"hotkeys"`
	LogLevel  string          `yaml:"log_level"`
}

// InjectConfig holds text insertion settings.
type InjectConfig struct {
	Mode          string `yaml:"mode"`            // "direct" or "paste"
	PreClickArrow string `yaml:"pre_click_arrow"` // "none", "left" or "right"
	CopyWaitMs    int    `yaml:"copy_wait_ms"`
	PasteWaitMs   int    `yaml:"paste_wait_ms"`
	Backend       string `yaml:"backend"` // "auto", "generic", "eventtap" or "keybd"
	Restore       string `yaml:"restore"` // "scoped" or "on-success"
}

// MaxWaitMs caps copy_wait_ms and paste_wait_ms.
const MaxWaitMs = 60_000

// CopyWait returns CopyWaitMs as a duration.
func (c InjectConfig) CopyWait() time.Duration {
	return time.Duration(c.CopyWaitMs) * time.Millisecond
}

// PasteWait returns PasteWaitMs as a duration.
func (c InjectConfig) PasteWait() time.Duration {
	return time.Duration(c.PasteWaitMs) * time.Millisecond
}

// ClipboardConfig holds clipboard backend settings.
type ClipboardConfig struct {
	Backend string `yaml:"backend"` // "auto", "system" or "text"
}

// HotkeyConfig binds a global key combo to a snippet. Empty Mode or
// PreClickArrow fall back to the inject section.
type HotkeyConfig struct {
	Keys          []string `yaml:"keys"`
	Text          string   `yaml:"text"`
	Mode          string   `yaml:"mode,omitempty"`
	PreClickArrow string   `yaml:"pre_click_arrow,omitempty"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "textinject")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Inject: InjectConfig{
			Mode:          "direct",
			PreClickArrow: "none",
			CopyWaitMs:    5,
			PasteWaitMs:   20,
			Backend:       "auto",
			Restore:       "scoped",
		},
		Clipboard: ClipboardConfig{
			Backend: "auto",
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. A leading ~ in path is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(expandTilde(path))
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if err := validateMode("inject.mode", c.Inject.Mode); err != nil {
		return err
	}
	if err := validateArrow("inject.pre_click_arrow", c.Inject.PreClickArrow); err != nil {
		return err
	}

	if c.Inject.CopyWaitMs < 0 || c.Inject.CopyWaitMs > MaxWaitMs {
		return fmt.Errorf("inject.copy_wait_ms must be between 0 and %d, got %d", MaxWaitMs, c.Inject.CopyWaitMs)
	}
	if c.Inject.PasteWaitMs < 0 || c.Inject.PasteWaitMs > MaxWaitMs {
		return fmt.Errorf("inject.paste_wait_ms must be between 0 and %d, got %d", MaxWaitMs, c.Inject.PasteWaitMs)
	}

	switch c.Inject.Backend {
	case "auto", "generic", "eventtap", "keybd":
	default:
		return fmt.Errorf("inject.backend must be auto, generic, eventtap, or keybd, got %q", c.Inject.Backend)
	}

	switch c.Inject.Restore {
	case "scoped", "on-success":
	default:
		return fmt.Errorf("inject.restore must be \"scoped\" or \"on-success\", got %q", c.Inject.Restore)
	}

	switch c.Clipboard.Backend {
	case "auto", "system", "text":
	default:
		return fmt.Errorf("clipboard.backend must be auto, system, or text, got %q", c.Clipboard.Backend)
	}

	for i, hk := range c.Hotkeys {
		if len(hk.Keys) == 0 {
			return fmt.Errorf("hotkeys[%d].keys must not be empty", i)
		}
		if hk.Text == "" {
			return fmt.Errorf("hotkeys[%d].text must not be empty", i)
		}
		if hk.Mode != "" {
			if err := validateMode(fmt.Sprintf("hotkeys[%d].mode", i), hk.Mode); err != nil {
				return err
			}
		}
		if err := validateArrow(fmt.Sprintf("hotkeys[%d].pre_click_arrow", i), hk.PreClickArrow); err != nil {
			return err
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

func validateMode(field, mode string) error {
	switch mode {
	case "direct", "type", "paste":
		return nil
	default:
		return fmt.Errorf("%s must be \"direct\", \"type\" or \"paste\", got %q", field, mode)
	}
}

func validateArrow(field, arrow string) error {
	switch arrow {
	case "", "none", "left", "right":
		return nil
	default:
		return fmt.Errorf("%s must be none, left, or right, got %q", field, arrow)
	}
}

// ParseLogLevel maps a log_level string to a slog.Level.
// Unknown values map to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const defaultHeader = `# textinject configuration
#
# inject.mode:            direct (synthesized text) or paste (clipboard + Ctrl/Cmd+V)
# inject.pre_click_arrow: none, left or right; clicked once before inserting
# inject.copy_wait_ms:    wait after staging text on the clipboard
# inject.paste_wait_ms:   wait after the paste keystroke before restoring the clipboard
# inject.backend:         auto, generic, eventtap (macOS) or keybd
# inject.restore:         scoped (restore on every exit) or on-success
# clipboard.backend:      auto, system or text
#
# hotkeys:
#   - keys: ["ctrl", "shift", "m"]
#     text: "me@example.com"
#     mode: paste

`

// WriteDefault writes the default config to DefaultConfigPath if no file
// exists there. It returns the written path, or "" if a file was already
// present.
func WriteDefault() (string, error) {
	path := DefaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return "", nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("checking config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(defaultHeader), data...), 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
