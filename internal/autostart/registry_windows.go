//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// RegistryBackend stores the record as a REG_SZ value under the per-user
// Run key.
type RegistryBackend struct{}

func DefaultBackend() Backend { return RegistryBackend{} }

func (RegistryBackend) Supported() bool { return true }

// Location names the value; the key itself is fixed.
func (RegistryBackend) Location() (string, error) {
	return `HKCU\` + runKeyPath + `\` + AppID, nil
}

// Write sets the value, creating the Run key if it is missing.
func (RegistryBackend) Write(_ string, rec Record) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("%w: open registry key: %v", ErrWriteFailed, err)
	}
	defer k.Close()

	if err := k.SetStringValue(AppID, rec.CommandLine()); err != nil {
		return fmt.Errorf("%w: set registry value: %v", ErrWriteFailed, err)
	}
	return nil
}

// Remove deletes the value. Missing keys and access errors are ignored.
func (RegistryBackend) Remove(string) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return
	}
	defer k.Close()

	_ = k.DeleteValue(AppID)
}

// Exists reports whether the value is present, whatever its content.
func (RegistryBackend) Exists(string) (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open registry key: %w", err)
	}
	defer k.Close()

	_, _, err = k.GetValue(AppID, nil)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query registry value: %w", err)
	}
	return true, nil
}
