package server

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/alarm-timer/alarm-timer/internal/config"
	"github.com/alarm-timer/alarm-timer/internal/web"
	"github.com/alarm-timer/alarm-timer/internal/window"
)

// handleIndex serves the settings page HTML.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	staticFS, _ := fs.Sub(web.StaticFiles, "static")
	f, err := staticFS.Open("index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.Copy(w, f)
}

// statusResponse is the JSON response for GET /status.
type statusResponse struct {
	Version       string `json:"version"`
	WindowVisible bool   `json:"window_visible"`
	ShowHotkey    string `json:"show_hotkey"`
}

// handleStatus returns the version, window state and hotkey.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Version:       s.version,
		WindowVisible: s.win.Visible(),
		ShowHotkey:    s.cfg.GetShowHotkey().String(),
	})
}

// autostartRequest is the JSON body for POST /autostart.
type autostartRequest struct {
	Enabled *bool `json:"enabled"`
}

// autostartResponse carries either the state or an error string. Enabled is
// omitted on error so a failed query is not mistaken for "off".
type autostartResponse struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleAutostart implements get_autostart (GET) and set_autostart (POST).
func (s *Server) handleAutostart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getAutostart(w)
	case http.MethodPost:
		s.setAutostart(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getAutostart(w http.ResponseWriter) {
	enabled, err := s.autostart.GetAutostart()
	if err != nil {
		s.logger.Warn("Query autostart failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, autostartResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, autostartResponse{Enabled: &enabled})
}

func (s *Server) setAutostart(w http.ResponseWriter, r *http.Request) {
	var req autostartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		writeJSON(w, http.StatusBadRequest, autostartResponse{Error: "invalid JSON: expected {\"enabled\": bool}"})
		return
	}

	enabled := *req.Enabled
	if err := s.autostart.SetAutostart(enabled); err != nil {
		s.logger.Warn("Set autostart failed", zap.Bool("enabled", enabled), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, autostartResponse{Error: err.Error()})
		return
	}

	s.logger.Info("Autostart changed", zap.Bool("enabled", enabled))
	writeJSON(w, http.StatusOK, autostartResponse{Enabled: &enabled})
}

// hotkeyRequest is the JSON body for POST /hotkey.
type hotkeyRequest struct {
	Modifiers []string `json:"modifiers"`
	JSCode    string   `json:"js_code"`
}

// hotkeyResponse is the JSON response for POST /hotkey.
type hotkeyResponse struct {
	Hotkey string `json:"hotkey,omitempty"`
	Error  string `json:"error,omitempty"`
}

// handleHotkey rebinds the show-window hotkey.
func (s *Server) handleHotkey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req hotkeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, hotkeyResponse{Error: "invalid JSON"})
		return
	}
	if len(req.Modifiers) == 0 {
		writeJSON(w, http.StatusBadRequest, hotkeyResponse{Error: "at least one modifier required"})
		return
	}

	keyName, err := config.KeyNameFromJSCode(req.JSCode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, hotkeyResponse{Error: "unsupported key: " + req.JSCode})
		return
	}

	if err := s.hotkeyMgr.Register(req.Modifiers, keyName); err != nil {
		s.logger.Warn("Hotkey register failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, hotkeyResponse{Error: "failed to register hotkey: " + err.Error()})
		return
	}

	if err := s.cfg.SetShowHotkey(req.Modifiers, keyName); err != nil {
		s.logger.Warn("Config save failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, hotkeyResponse{Error: "hotkey changed but failed to persist config"})
		return
	}

	hk := s.cfg.GetShowHotkey()
	s.logger.Info("Hotkey updated", zap.String("hotkey", hk.String()))
	writeJSON(w, http.StatusOK, hotkeyResponse{Hotkey: hk.String()})
}

// windowResponse is the JSON response for the /window routes.
type windowResponse struct {
	Visible bool   `json:"visible"`
	Error   string `json:"error,omitempty"`
}

// handleWindowClose intercepts a close request and hides the window
// instead of exiting.
func (s *Server) handleWindowClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.win.Hide(); err != nil {
		writeJSON(w, http.StatusInternalServerError, windowResponse{Visible: s.win.Visible(), Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, windowResponse{Visible: s.win.Visible()})
}

// handleWindowShow shows and focuses the window.
func (s *Server) handleWindowShow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := window.Present(s.win, false); err != nil {
		writeJSON(w, http.StatusInternalServerError, windowResponse{Visible: s.win.Visible(), Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, windowResponse{Visible: s.win.Visible()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
