// Package llm provides chat-completion providers behind a single
// interface. Providers return the extracted plain text of the model reply.
package llm

import (
	"context"
	"errors"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a conversation, in order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options tunes a single chat call. Zero values fall back to provider
// defaults.
type Options struct {
	Temperature float64
}

// Chatter is a chat-completion provider.
type Chatter interface {
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)
}

// ErrMissingKey reports an absent API credential, raised before any request.
var ErrMissingKey = errors.New("llm: missing API key")

// ErrNoContent reports a well-formed response from which no text could be
// extracted.
var ErrNoContent = errors.New("llm: response contained no text")

// IsCanceled reports whether err is a cooperative cancellation rather than
// a real failure. Superseded chat requests end up here and must not be
// shown to the user as errors.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
