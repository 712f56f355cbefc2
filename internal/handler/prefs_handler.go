package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"regmap/internal/prefs"
)

type PrefsHandler struct {
	store prefs.Store
}

func NewPrefsHandler(store prefs.Store) *PrefsHandler {
	return &PrefsHandler{store: store}
}

func (h *PrefsHandler) GetTheme(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing storage key"})
		return
	}

	theme, err := h.store.Theme(c.Request.Context(), key)
	if err != nil {
		slog.Error("error reading theme preference", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Preference store error"})
		return
	}

	c.JSON(http.StatusOK, ThemeResponse{Theme: theme})
}

func (h *PrefsHandler) PutTheme(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing storage key"})
		return
	}

	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme payload"})
		return
	}

	if err := h.store.SetTheme(c.Request.Context(), key, req.Theme); err != nil {
		if errors.Is(err, prefs.ErrInvalidTheme) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("error saving theme preference", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Preference store error"})
		return
	}

	c.JSON(http.StatusOK, ThemeResponse{Theme: req.Theme})
}
