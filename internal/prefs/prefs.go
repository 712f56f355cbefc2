// Package prefs persists the single piece of per-client UI state the
// dashboard keeps: the theme preference, keyed by a caller-supplied
// storage key.
package prefs

import (
	"context"
	"errors"
)

const (
	ThemeLight   = "light"
	ThemeDark    = "dark"
	DefaultTheme = ThemeLight
)

// ErrInvalidTheme reports a value outside {light, dark}.
var ErrInvalidTheme = errors.New("prefs: theme must be \"light\" or \"dark\"")

// Store reads and writes theme preferences. Theme returns DefaultTheme
// for keys never written.
type Store interface {
	Theme(ctx context.Context, key string) (string, error)
	SetTheme(ctx context.Context, key, theme string) error
}

func validTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}
