package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"regmap/internal/model"
)

// DashboardSource serves the map's data. Implementations never fail: the
// fallback layer guarantees a renderable collection.
type DashboardSource interface {
	States(ctx context.Context) []model.StateStatus
	NewsForState(ctx context.Context, code string) []model.NewsItem
}

type MapHandler struct {
	source DashboardSource
}

func NewMapHandler(source DashboardSource) *MapHandler {
	return &MapHandler{source: source}
}

func (h *MapHandler) GetStates(c *gin.Context) {
	states := h.source.States(c.Request.Context())
	c.JSON(http.StatusOK, StatesResponse{States: states})
}

func (h *MapHandler) GetNews(c *gin.Context) {
	state := c.Query("state")
	news := h.source.NewsForState(c.Request.Context(), state)
	c.JSON(http.StatusOK, NewsResponse{News: news})
}

func (h *MapHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
