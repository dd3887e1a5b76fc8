// Package server provides the local HTTP server for the settings UI.
//
// The UI calls set_autostart/get_autostart through it; errors come back as
// plain strings.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alarm-timer/alarm-timer/internal/config"
	"github.com/alarm-timer/alarm-timer/internal/web"
	"github.com/alarm-timer/alarm-timer/internal/window"
)

// Autostarter is the autostart surface exposed to the UI.
type Autostarter interface {
	SetAutostart(enabled bool) error
	GetAutostart() (bool, error)
}

// HotkeyRegistrar rebinds the show-window hotkey.
type HotkeyRegistrar interface {
	Register(mods []string, key string) error
}

// Server serves the settings UI on localhost.
type Server struct {
	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	autostart  Autostarter
	hotkeyMgr  HotkeyRegistrar
	win        window.Window
	cfg        *config.Config
	version    string
	logger     *zap.Logger
}

// New creates a settings server.
func New(as Autostarter, hotkeyMgr HotkeyRegistrar, win window.Window, cfg *config.Config, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		autostart: as,
		hotkeyMgr: hotkeyMgr,
		win:       win,
		cfg:       cfg,
		version:   version,
		logger:    logger.With(zap.String("component", "server")),
	}
}

// Handler returns the routes served by the settings server.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	staticFS, err := fs.Sub(web.StaticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/autostart", s.handleAutostart)
	mux.HandleFunc("/hotkey", s.handleHotkey)
	mux.HandleFunc("/window/close", s.handleWindowClose)
	mux.HandleFunc("/window/show", s.handleWindowShow)
	return mux, nil
}

// Start begins serving on a random localhost port.
// Returns the URL to open in the browser.
func (s *Server) Start() (string, error) {
	handler, err := s.Handler()
	if err != nil {
		return "", err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen: %w", err)
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.listener = ln
	s.httpServer = srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Settings server stopped", zap.Error(err))
		}
	}()

	url := "http://" + ln.Addr().String()
	s.logger.Info("Settings available", zap.String("url", url))
	return url, nil
}

// Stop shuts down the HTTP server.
func (s *Server) Stop() {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Warn("Settings server shutdown", zap.Error(err))
	}
}

// URL returns the server's URL, or empty string if not started.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}
