package prefs

import (
	"context"
	"sync"
)

// MemoryStore is the in-process fallback used when Redis is not
// configured. Preferences last for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: make(map[string]string)}
}

func (s *MemoryStore) Theme(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if theme, ok := s.themes[key]; ok {
		return theme, nil
	}
	return DefaultTheme, nil
}

func (s *MemoryStore) SetTheme(_ context.Context, key, theme string) error {
	if !validTheme(theme) {
		return ErrInvalidTheme
	}
	s.mu.Lock()
	s.themes[key] = theme
	s.mu.Unlock()
	return nil
}
