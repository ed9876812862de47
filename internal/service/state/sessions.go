package state

import (
	"strings"
	"sync"

	"github.com/sandevgo/saori/internal/core"
)

var validModes = map[string]struct{}{
	core.ModeQuick:       {},
	core.ModeHybrid:      {},
	core.ModeLocal:       {},
	core.ModeAIPreferred: {},
}

// Sessions keeps the response mode chosen by each chat session.
type Sessions struct {
	mu          sync.RWMutex
	modes       map[string]string
	defaultMode string
}

func NewSessions(defaultMode string) *Sessions {
	if !IsValidMode(defaultMode) {
		defaultMode = core.ModeQuick
	}
	return &Sessions{
		modes:       make(map[string]string),
		defaultMode: defaultMode,
	}
}

func IsValidMode(mode string) bool {
	_, ok := validModes[mode]
	return ok
}

func (s *Sessions) Mode(sessionID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if mode, ok := s.modes[sessionID]; ok {
		return mode
	}
	return s.defaultMode
}

func (s *Sessions) SetMode(sessionID, mode string) error {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if !IsValidMode(mode) {
		return core.ErrInvalidInput
	}

	s.mu.Lock()
	s.modes[sessionID] = mode
	s.mu.Unlock()
	return nil
}

func (s *Sessions) Modes() []string {
	return []string{core.ModeQuick, core.ModeHybrid, core.ModeLocal, core.ModeAIPreferred}
}
