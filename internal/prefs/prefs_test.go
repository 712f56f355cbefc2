package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestMemoryStoreDefaultsToLight(t *testing.T) {
	store := NewMemoryStore()

	theme, err := store.Theme(context.Background(), "viewer-1")
	assert.Equal(t, nil, err)
	assert.Equal(t, ThemeLight, theme)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	err := store.SetTheme(context.Background(), "viewer-1", ThemeDark)
	assert.Equal(t, nil, err)

	theme, err := store.Theme(context.Background(), "viewer-1")
	assert.Equal(t, nil, err)
	assert.Equal(t, ThemeDark, theme)

	// Other keys are unaffected.
	other, err := store.Theme(context.Background(), "viewer-2")
	assert.Equal(t, nil, err)
	assert.Equal(t, ThemeLight, other)
}

func TestMemoryStoreRejectsUnknownTheme(t *testing.T) {
	store := NewMemoryStore()

	err := store.SetTheme(context.Background(), "viewer-1", "sepia")
	assert.Equal(t, true, errors.Is(err, ErrInvalidTheme))
}
