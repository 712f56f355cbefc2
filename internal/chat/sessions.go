// Package chat runs chat requests per dashboard panel. Starting a new
// request for a panel cancels its predecessor first, so replies can never
// arrive out of order.
package chat

import (
	"context"
	"sync"

	"regmap/pkg/llm"
)

type inflight struct {
	cancel context.CancelFunc
}

// Sessions tracks the in-flight request per panel.
type Sessions struct {
	chatter llm.Chatter

	mu     sync.Mutex
	active map[string]*inflight
}

func NewSessions(chatter llm.Chatter) *Sessions {
	return &Sessions{
		chatter: chatter,
		active:  make(map[string]*inflight),
	}
}

// Ask sends one conversation to the provider. A concurrent Ask for the
// same panel cancels this one; the superseded call returns an error for
// which llm.IsCanceled reports true.
func (s *Sessions) Ask(ctx context.Context, panelID string, messages []llm.Message, opts llm.Options) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	entry := &inflight{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.active[panelID]; ok {
		prev.cancel()
	}
	s.active[panelID] = entry
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		if s.active[panelID] == entry {
			delete(s.active, panelID)
		}
		s.mu.Unlock()
	}()

	return s.chatter.Chat(ctx, messages, opts)
}
