// Package window controls visibility of the settings window.
//
// The window is the settings page opened in the user's browser. A browser
// tab cannot be closed from here, so hiding only records the state; close
// requests from the page are routed to Hide instead of quitting the app.
package window

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// ErrHidden is returned when focusing a window that is not shown.
var ErrHidden = errors.New("window is hidden")

// Window is the visibility surface used by the tray, hotkey and server.
type Window interface {
	Show() error
	Hide() error
	SetFocus() error
	Visible() bool
}

// BrowserWindow presents the settings page in the default browser.
type BrowserWindow struct {
	mu      sync.Mutex
	visible bool
	raised  bool // opened by Show and not yet focused
	url     func() string
	open    func(url string) error
	logger  *zap.Logger
}

// NewBrowserWindow returns a hidden window for the page at url().
func NewBrowserWindow(url func() string, logger *zap.Logger) *BrowserWindow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserWindow{
		url:    url,
		open:   OpenBrowser,
		logger: logger.With(zap.String("component", "window")),
	}
}

// Show opens the page if the window is hidden.
func (w *BrowserWindow) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.visible {
		return nil
	}
	if err := w.openLocked(); err != nil {
		return err
	}
	w.visible = true
	w.raised = true
	w.logger.Debug("Window shown")
	return nil
}

// Hide marks the window hidden. It never terminates the process.
func (w *BrowserWindow) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.visible {
		w.logger.Debug("Window hidden")
	}
	w.visible = false
	w.raised = false
	return nil
}

// SetFocus brings the page to the front. Right after Show it is a no-op.
func (w *BrowserWindow) SetFocus() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.visible {
		return ErrHidden
	}
	if w.raised {
		w.raised = false
		return nil
	}
	return w.openLocked()
}

// Visible reports whether the window is shown.
func (w *BrowserWindow) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *BrowserWindow) openLocked() error {
	u := w.url()
	if u == "" {
		return fmt.Errorf("settings server not running")
	}
	if err := w.open(u); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// OpenBrowser opens url in the user's default browser.
func OpenBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default: // linux, bsd
		cmd = "xdg-open"
		args = []string{url}
	}

	return exec.Command(cmd, args...).Start()
}

// Present applies the startup visibility: hidden when the app was launched
// at login, otherwise shown and focused.
func Present(w Window, hidden bool) error {
	if hidden {
		return w.Hide()
	}
	if err := w.Show(); err != nil {
		return err
	}
	return w.SetFocus()
}
