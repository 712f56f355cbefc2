package source

import (
	"context"
	"log/slog"

	"regmap/internal/demo"
	"regmap/internal/model"
)

// Upstream is what the fallback wraps: a source that can fail or come back
// empty.
type Upstream interface {
	States(ctx context.Context) ([]model.StateStatus, error)
	NewsForState(ctx context.Context, code string) ([]model.NewsItem, error)
}

// Fallback substitutes the bundled demo dataset whenever the upstream
// fails or returns nothing. It never propagates an error: the dashboard
// must always have something to render.
type Fallback struct {
	upstream Upstream
	log      *slog.Logger
}

func NewFallback(upstream Upstream, log *slog.Logger) *Fallback {
	if log == nil {
		log = slog.Default()
	}
	return &Fallback{upstream: upstream, log: log}
}

func (f *Fallback) States(ctx context.Context) []model.StateStatus {
	states, err := f.upstream.States(ctx)
	if err != nil {
		f.log.Warn("states fetch failed, serving demo data", "error", err)
		return demo.States()
	}
	if len(states) == 0 {
		f.log.Warn("states fetch returned no data, serving demo data")
		return demo.States()
	}
	return states
}

func (f *Fallback) NewsForState(ctx context.Context, code string) []model.NewsItem {
	if code == "" {
		return []model.NewsItem{}
	}

	items, err := f.upstream.NewsForState(ctx, code)
	if err != nil {
		f.log.Warn("news fetch failed, serving demo feed", "state", code, "error", err)
		return demo.NewsForState(code)
	}
	if len(items) == 0 {
		f.log.Warn("news fetch returned no items, serving demo feed", "state", code)
		return demo.NewsForState(code)
	}
	return items
}
