package source

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"regmap/internal/demo"
	"regmap/internal/model"
)

type fakeUpstream struct {
	states []model.StateStatus
	news   []model.NewsItem
	err    error
}

func (f *fakeUpstream) States(ctx context.Context) ([]model.StateStatus, error) {
	return f.states, f.err
}

func (f *fakeUpstream) NewsForState(ctx context.Context, code string) ([]model.NewsItem, error) {
	return f.news, f.err
}

func TestFallbackPassesThroughLiveData(t *testing.T) {
	upstream := &fakeUpstream{
		states: []model.StateStatus{{Code: "CA", Status: model.StatusRed}},
		news:   []model.NewsItem{{ID: "n1-CA", State: "CA"}},
	}
	fallback := NewFallback(upstream, nil)

	states := fallback.States(context.Background())
	assert.Equal(t, 1, len(states))
	assert.Equal(t, "CA", states[0].Code)

	news := fallback.NewsForState(context.Background(), "CA")
	assert.Equal(t, 1, len(news))
	assert.Equal(t, "n1-CA", news[0].ID)
}

func TestFallbackOnTransportFailure(t *testing.T) {
	upstream := &fakeUpstream{err: errors.New("connection refused")}
	fallback := NewFallback(upstream, nil)

	states := fallback.States(context.Background())
	assert.Equal(t, len(demo.States()), len(states))

	news := fallback.NewsForState(context.Background(), "WA")
	assert.Equal(t, len(demo.NewsForState("WA")), len(news))
}

func TestFallbackOnEmptyResult(t *testing.T) {
	fallback := NewFallback(&fakeUpstream{}, nil)

	states := fallback.States(context.Background())
	assert.Equal(t, len(demo.States()), len(states))

	news := fallback.NewsForState(context.Background(), "NJ")
	assert.Equal(t, len(demo.NewsForState("NJ")), len(news))
}

func TestFallbackBlankStateCode(t *testing.T) {
	upstream := &fakeUpstream{news: []model.NewsItem{{ID: "n1"}}}
	fallback := NewFallback(upstream, nil)

	news := fallback.NewsForState(context.Background(), "")
	assert.Equal(t, 0, len(news))
}
