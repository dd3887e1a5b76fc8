package hotkey

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.design/x/hotkey"
)

// Manager owns one global hotkey and runs a callback on each key-down.
type Manager struct {
	mu      sync.Mutex
	hk      *hotkey.Hotkey
	cancel  context.CancelFunc
	onPress func()
	logger  *zap.Logger
}

// NewManager creates a hotkey manager that calls onPress on key-down.
func NewManager(onPress func(), logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		onPress: onPress,
		logger:  logger.With(zap.String("component", "hotkey")),
	}
}

// Register sets up a global hotkey with the given modifiers and key.
// If a hotkey is already registered, it is unregistered first.
func (m *Manager) Register(mods []string, key string) error {
	parsedMods, err := ParseModifiers(mods)
	if err != nil {
		return fmt.Errorf("parse modifiers: %w", err)
	}
	parsedKey, err := ParseKey(key)
	if err != nil {
		return fmt.Errorf("parse key: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.unregisterLocked()

	hk := hotkey.New(parsedMods, parsedKey)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey: %w", err)
	}
	m.hk = hk

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go m.listen(ctx, hk)

	m.logger.Info("Hotkey registered", zap.Strings("modifiers", mods), zap.String("key", key))
	return nil
}

// listen calls onPress for every key-down until ctx is cancelled.
func (m *Manager) listen(ctx context.Context, hk *hotkey.Hotkey) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hk.Keydown():
			if m.onPress != nil {
				m.onPress()
			}
		}
	}
}

// Unregister removes the current global hotkey.
func (m *Manager) Unregister() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unregisterLocked()
}

func (m *Manager) unregisterLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.hk != nil {
		if err := m.hk.Unregister(); err != nil {
			m.logger.Debug("Hotkey unregister failed", zap.Error(err))
		}
		m.hk = nil
	}
}
