// Package config handles loading and saving the Alarm Timer configuration.
//
// Autostart state is not stored here; the OS registration is the only
// record of whether the app starts at login.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	mu         sync.RWMutex  `yaml:"-"`
	path       string        `yaml:"-"`
	ShowHotkey HotkeyConfig  `yaml:"show_hotkey"`
	Logging    LoggingConfig `yaml:"logging"`
}

// HotkeyConfig defines a global hotkey binding.
type HotkeyConfig struct {
	Modifiers []string `yaml:"modifiers"` // "ctrl", "shift", "alt", "super"
	Key       string   `yaml:"key"`       // "t", "space", "f5", etc.
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// String returns a human-readable representation like "Ctrl+Alt+T".
func (h HotkeyConfig) String() string {
	var b strings.Builder
	for _, m := range h.Modifiers {
		switch m {
		case "ctrl":
			b.WriteString("Ctrl+")
		case "shift":
			b.WriteString("Shift+")
		case "alt":
			b.WriteString("Alt+")
		case "super":
			b.WriteString("Super+")
		}
	}
	if len(h.Key) == 1 {
		b.WriteString(strings.ToUpper(h.Key))
	} else {
		b.WriteString(h.Key)
	}
	return b.String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ShowHotkey: HotkeyConfig{
			Modifiers: []string{"ctrl", "alt"},
			Key:       "t",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the OS-appropriate config directory for alarm-timer.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, "alarm-timer"), nil
}

// Path returns the full path to the default config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from path, or from Path() when path is empty.
// If the file doesn't exist, a default config is created and saved.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = path
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, fmt.Errorf("create default config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig() // start with defaults so new fields get populated
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Save writes the config to disk atomically (write temp, rename).
func (c *Config) Save() error {
	c.mu.RLock()
	data, err := yaml.Marshal(c)
	p := c.path
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// FilePath returns where the config is persisted.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// SetShowHotkey updates the show-window hotkey and saves to disk.
func (c *Config) SetShowHotkey(mods []string, key string) error {
	c.mu.Lock()
	c.ShowHotkey = HotkeyConfig{Modifiers: append([]string(nil), mods...), Key: key}
	c.mu.Unlock()
	return c.Save()
}

// GetShowHotkey returns a copy of the current show-window hotkey.
func (c *Config) GetShowHotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mods := make([]string, len(c.ShowHotkey.Modifiers))
	copy(mods, c.ShowHotkey.Modifiers)
	return HotkeyConfig{Modifiers: mods, Key: c.ShowHotkey.Key}
}

// GetLogging returns the logging settings with environment overrides
// (AT_LOG_LEVEL, AT_LOG_FILE) applied. Overrides are never persisted.
func (c *Config) GetLogging() LoggingConfig {
	c.mu.RLock()
	l := c.Logging
	c.mu.RUnlock()

	if level := os.Getenv("AT_LOG_LEVEL"); level != "" {
		l.Level = level
	}
	if file := os.Getenv("AT_LOG_FILE"); file != "" {
		l.File = file
	}
	return l
}
