package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

const desktopEntryTemplate = `[Desktop Entry]
Type=Application
Name=%s
Exec=%s
Terminal=false
X-GNOME-Autostart-enabled=true
`

// DesktopEntry renders the XDG autostart entry for r.
func (r Record) DesktopEntry() string {
	return fmt.Sprintf(desktopEntryTemplate, DisplayName, r.CommandLine())
}

// DesktopFileBackend stores the record as an XDG autostart .desktop file.
type DesktopFileBackend struct {
	// LookupEnv reads environment variables; os.LookupEnv when nil.
	LookupEnv func(key string) (string, bool)
}

// NewDesktopFileBackend returns a backend reading the process environment.
func NewDesktopFileBackend() *DesktopFileBackend {
	return &DesktopFileBackend{LookupEnv: os.LookupEnv}
}

func (d *DesktopFileBackend) Supported() bool { return true }

// Location returns $XDG_CONFIG_HOME/autostart/<file>, falling back to
// $HOME/.config. Empty variables count as unset.
func (d *DesktopFileBackend) Location() (string, error) {
	lookup := d.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var base string
	if v, ok := lookup("XDG_CONFIG_HOME"); ok && v != "" {
		base = v
	} else if home, ok := lookup("HOME"); ok && home != "" {
		base = filepath.Join(home, ".config")
	} else {
		return "", ErrConfigDirUnresolvable
	}
	return filepath.Join(base, "autostart", DesktopFileName), nil
}

// Write creates the autostart directory if needed and replaces the entry
// atomically (write a uniquely named temp file, rename).
func (d *DesktopFileBackend) Write(loc string, rec Record) error {
	if err := os.MkdirAll(filepath.Dir(loc), 0o755); err != nil {
		return fmt.Errorf("%w: create autostart dir: %v", ErrWriteFailed, err)
	}

	f, err := os.CreateTemp(filepath.Dir(loc), DesktopFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp desktop file: %v", ErrWriteFailed, err)
	}
	tmp := f.Name()
	if _, err := f.WriteString(rec.DesktopEntry()); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: write desktop file: %v", ErrWriteFailed, err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: chmod desktop file: %v", ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close desktop file: %v", ErrWriteFailed, err)
	}
	if err := os.Rename(tmp, loc); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: rename desktop file: %v", ErrWriteFailed, err)
	}
	return nil
}

// Remove deletes the entry, ignoring missing files and permission errors.
func (d *DesktopFileBackend) Remove(loc string) {
	_ = os.Remove(loc)
}

// Exists reports whether the entry file is present.
func (d *DesktopFileBackend) Exists(loc string) (bool, error) {
	_, err := os.Stat(loc)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking desktop file: %w", err)
	}
	return true, nil
}
