// Alarm Timer — system tray host for the alarm timer window.
//
// Started with --autostart (as registered by "Start on Login") the window
// stays hidden and only the tray icon appears. Closing the window hides it;
// Quit in the tray menu exits.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/alarm-timer/alarm-timer/internal/autostart"
	"github.com/alarm-timer/alarm-timer/internal/config"
	"github.com/alarm-timer/alarm-timer/internal/hotkey"
	"github.com/alarm-timer/alarm-timer/internal/logging"
	"github.com/alarm-timer/alarm-timer/internal/server"
	"github.com/alarm-timer/alarm-timer/internal/tray"
	"github.com/alarm-timer/alarm-timer/internal/window"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath  = flag.String("config", "", "Path to configuration file (default: user config dir)")
	showVersion = flag.Bool("version", false, "Show version and exit")

	// Registered so the launch marker parses; detection uses
	// autostart.StartedByAutostart on the raw arguments.
	_ = flag.Bool("autostart", false, "Start hidden (set by the login autostart entry)")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("alarm-timer %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.GetLogging(), os.Stderr)
	defer logger.Sync()

	startHidden := autostart.StartedByAutostart(os.Args[1:])
	logger.Info("Starting Alarm Timer",
		zap.String("version", version),
		zap.String("config", cfg.FilePath()),
		zap.Bool("start_hidden", startHidden))

	as := autostart.New(logger)

	var srv *server.Server
	win := window.NewBrowserWindow(func() string { return srv.URL() }, logger)

	showWindow := func() {
		if err := window.Present(win, false); err != nil {
			logger.Warn("Show window failed", zap.Error(err))
		}
	}

	hkMgr := hotkey.NewManager(showWindow, logger)
	srv = server.New(as, hkMgr, win, cfg, version, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		tray.Quit()
	}()

	tray.Run(tray.RunOpts{
		Version: version,

		// The OS registration is the only source of truth; a failed query
		// leaves the menu item marked unknown rather than unchecked.
		QueryAutostart: func() (bool, error) {
			on, err := as.GetAutostart()
			if err != nil {
				logger.Warn("Query autostart failed", zap.Error(err))
			}
			return on, err
		},

		OnReady: func() {
			if _, err := srv.Start(); err != nil {
				logger.Error("Settings server failed", zap.Error(err))
			}

			hk := cfg.GetShowHotkey()
			if err := hkMgr.Register(hk.Modifiers, hk.Key); err != nil {
				logger.Warn("Show-window hotkey unavailable", zap.String("hotkey", hk.String()), zap.Error(err))
			}

			if err := window.Present(win, startHidden); err != nil {
				logger.Warn("Show window failed", zap.Error(err))
			}
			logger.Info("Ready")
		},

		OnTapped: showWindow,

		OnShow: showWindow,

		OnHide: func() { _ = win.Hide() },

		OnAutostart: func(enabled bool) error {
			if err := as.SetAutostart(enabled); err != nil {
				logger.Error("Set autostart failed", zap.Bool("enabled", enabled), zap.Error(err))
				return err
			}
			return nil
		},

		OnQuit: func() {
			hkMgr.Unregister()
			srv.Stop()
			logger.Info("Alarm Timer stopped")
		},
	})
}
