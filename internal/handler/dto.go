package handler

import (
	"regmap/internal/model"
	"regmap/pkg/llm"
)

type StatesResponse struct {
	States []model.StateStatus `json:"states"`
}

type NewsResponse struct {
	News []model.NewsItem `json:"news"`
}

type ChatRequest struct {
	PanelID     string        `json:"panel_id"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}
