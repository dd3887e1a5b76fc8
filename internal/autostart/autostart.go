// Package autostart manages registering the app to start on login.
//
// The registration record lives outside the process (registry value or
// XDG desktop entry) and is the only source of truth; nothing is cached
// between calls. Each platform family has its own Backend, picked once by
// DefaultBackend.
package autostart

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

const (
	// AppID names the registry value holding the record.
	AppID = "AlarmTimer"
	// DesktopFileName is the XDG autostart entry file name.
	DesktopFileName = "alarm-timer.desktop"
	// DisplayName is written into the desktop entry's Name field.
	DisplayName = "Alarm Timer"
	// LaunchMarker is appended to the stored command line so the app can
	// tell it was started at login.
	LaunchMarker = "--autostart"
)

var (
	// ErrPathResolution means the running executable could not be located.
	ErrPathResolution = errors.New("cannot resolve executable path")
	// ErrConfigDirUnresolvable means neither XDG_CONFIG_HOME nor HOME is set.
	ErrConfigDirUnresolvable = errors.New("unable to resolve config directory")
	// ErrWriteFailed means the enabling write did not succeed.
	ErrWriteFailed = errors.New("failed to add to startup")
)

// Record is the "run this executable at login" entry.
type Record struct {
	ExecPath string
}

// CommandLine returns the quoted executable path followed by the marker.
func (r Record) CommandLine() string {
	return fmt.Sprintf(`"%s" %s`, r.ExecPath, LaunchMarker)
}

// Backend reads and mutates one platform's registration location.
type Backend interface {
	// Supported is false on platforms with no autostart mechanism.
	Supported() bool
	// Location resolves where the record lives.
	Location() (string, error)
	// Write stores rec at loc, replacing any existing record.
	Write(loc string, rec Record) error
	// Remove deletes the record at loc. Failures are swallowed.
	Remove(loc string)
	// Exists reports whether a record is present at loc.
	Exists(loc string) (bool, error)
}

// Manager enables, disables and queries autostart for this application.
type Manager struct {
	backend    Backend
	executable func() (string, error)
	logger     *zap.Logger
}

// New returns a Manager using the backend for the running platform.
func New(logger *zap.Logger) *Manager {
	return NewWithBackend(DefaultBackend(), logger)
}

// NewWithBackend returns a Manager that stores records through b.
func NewWithBackend(b Backend, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		backend:    b,
		executable: ExecutablePath,
		logger:     logger.With(zap.String("component", "autostart")),
	}
}

// SetAutostart registers (enabled) or unregisters the current executable.
// Disabling never fails once the location is resolved.
func (m *Manager) SetAutostart(enabled bool) error {
	if !m.backend.Supported() {
		m.logger.Debug("Autostart unsupported on this platform, ignoring",
			zap.Bool("enabled", enabled))
		return nil
	}
	if enabled {
		return m.enable()
	}
	return m.disable()
}

func (m *Manager) enable() error {
	exe, err := m.executable()
	if err != nil {
		return err
	}

	loc, err := m.backend.Location()
	if err != nil {
		return err
	}

	rec := Record{ExecPath: exe}
	if err := m.backend.Write(loc, rec); err != nil {
		m.logger.Warn("Failed to write autostart record",
			zap.String("location", loc), zap.Error(err))
		return err
	}

	m.logger.Info("Autostart enabled",
		zap.String("location", loc),
		zap.String("exec", exe))
	return nil
}

func (m *Manager) disable() error {
	loc, err := m.backend.Location()
	if err != nil {
		return err
	}
	m.backend.Remove(loc)
	m.logger.Info("Autostart disabled", zap.String("location", loc))
	return nil
}

// GetAutostart reports whether a record is registered. Only presence is
// checked; the stored path may be stale.
func (m *Manager) GetAutostart() (bool, error) {
	if !m.backend.Supported() {
		return false, nil
	}
	loc, err := m.backend.Location()
	if err != nil {
		return false, err
	}
	return m.backend.Exists(loc)
}

// StartedByAutostart reports whether args carry the launch marker.
func StartedByAutostart(args []string) bool {
	return slices.Contains(args, LaunchMarker)
}

// Unsupported is the Backend for platforms without autostart.
type Unsupported struct{}

func (Unsupported) Supported() bool             { return false }
func (Unsupported) Location() (string, error)   { return "", nil }
func (Unsupported) Write(string, Record) error  { return nil }
func (Unsupported) Remove(string)               {}
func (Unsupported) Exists(string) (bool, error) { return false, nil }
