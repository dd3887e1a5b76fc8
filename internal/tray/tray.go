// Package tray manages the system tray icon and menu.
package tray

import (
	"strings"

	"fyne.io/systray"
)

// RunOpts configures the system tray.
type RunOpts struct {
	Version        string               // app version string (e.g., "1.0.0")
	QueryAutostart func() (bool, error) // reads "Start on Login" from the OS
	OnReady        func()
	OnTapped       func() // left-click on the tray icon
	OnShow         func()
	OnHide         func()
	OnAutostart    func(enabled bool) error // a non-nil error reverts the checkbox
	OnQuit         func()
}

// Run starts the system tray. It blocks on the main thread.
func Run(opts RunOpts) {
	systray.Run(func() {
		systray.SetIcon(icon)
		systray.SetTitle("")
		systray.SetTooltip("Alarm Timer")
		if opts.OnTapped != nil {
			systray.SetOnTapped(opts.OnTapped)
		}

		versionLabel := "Alarm Timer"
		if opts.Version != "" && opts.Version != "dev" {
			versionLabel += " v" + strings.TrimPrefix(opts.Version, "v")
		}
		mVersion := systray.AddMenuItem(versionLabel, "")
		mVersion.Disable()

		systray.AddSeparator()

		mShow := systray.AddMenuItem("Show Window", "Open the Alarm Timer window")
		mHide := systray.AddMenuItem("Hide Window", "Hide the Alarm Timer window")
		mAutostart := systray.AddMenuItemCheckbox(autostartTitle, "Launch automatically on login", false)
		autostart := &autostartToggle{item: mAutostart, query: opts.QueryAutostart, set: opts.OnAutostart}
		autostart.refresh()

		systray.AddSeparator()

		mQuit := systray.AddMenuItem("Quit", "Exit Alarm Timer")

		if opts.OnReady != nil {
			opts.OnReady()
		}

		go func() {
			for {
				select {
				case <-mShow.ClickedCh:
					if opts.OnShow != nil {
						opts.OnShow()
					}
				case <-mHide.ClickedCh:
					if opts.OnHide != nil {
						opts.OnHide()
					}
				case <-mAutostart.ClickedCh:
					autostart.click()
				case <-mQuit.ClickedCh:
					if opts.OnQuit != nil {
						opts.OnQuit()
					}
					systray.Quit()
					return
				}
			}
		}()
	}, func() {
		// cleanup on systray exit
	})
}

const (
	autostartTitle        = "Start on Login"
	autostartTitleUnknown = "Start on Login (unknown)"
)

// checkbox is the part of *systray.MenuItem the autostart item drives.
type checkbox interface {
	Checked() bool
	Check()
	Uncheck()
	SetTitle(title string)
}

// autostartToggle keeps the "Start on Login" item in step with the OS
// registration. While the state is unknown the item is unchecked and
// retitled, and a click re-queries instead of toggling.
type autostartToggle struct {
	item  checkbox
	query func() (bool, error)
	set   func(bool) error
	known bool
}

// refresh reads the registration state into the checkbox.
func (a *autostartToggle) refresh() {
	if a.query == nil {
		a.known = true
		return
	}
	on, err := a.query()
	if err != nil {
		a.known = false
		a.item.SetTitle(autostartTitleUnknown)
		a.item.Uncheck()
		return
	}
	a.known = true
	a.item.SetTitle(autostartTitle)
	setChecked(a.item, on)
}

// click flips the checkbox and keeps it only if set succeeds.
func (a *autostartToggle) click() {
	if !a.known {
		a.refresh()
		return
	}
	want := !a.item.Checked()
	setChecked(a.item, want)
	if a.set == nil {
		return
	}
	if err := a.set(want); err != nil {
		setChecked(a.item, !want)
	}
}

func setChecked(item checkbox, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

// Quit stops the system tray.
func Quit() {
	systray.Quit()
}
