package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"regmap/pkg/llm"
)

// ChatService runs one panel's chat request, cancelling that panel's
// previous request first.
type ChatService interface {
	Ask(ctx context.Context, panelID string, messages []llm.Message, opts llm.Options) (string, error)
}

type ChatHandler struct {
	sessions ChatService
}

func NewChatHandler(sessions ChatService) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

func (h *ChatHandler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat request"})
		return
	}
	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No messages provided"})
		return
	}

	panelID := req.PanelID
	if panelID == "" {
		panelID = "default"
	}

	reply, err := h.sessions.Ask(c.Request.Context(), panelID, req.Messages, llm.Options{
		Temperature: req.Temperature,
	})
	if err != nil {
		switch {
		case llm.IsCanceled(err):
			// Superseded by a newer request for the same panel. Not a
			// failure; the client just discards this response.
			c.JSON(http.StatusConflict, gin.H{"superseded": true})
		case errors.Is(err, llm.ErrMissingKey):
			slog.Error("chat provider not configured", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat is not configured"})
		case errors.Is(err, llm.ErrNoContent):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Model returned an empty response"})
		default:
			slog.Error("chat request failed", "panel", panelID, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
