package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"regmap/internal/model"
	"regmap/internal/normalize"
)

// Proxy serves the dashboard from a pre-built backend exposing GET /states
// and GET /news?state=. Responses may arrive in any envelope shape the
// normalizer accepts; this is the alternative to fetching the tables
// directly.
type Proxy struct {
	baseURL    string
	httpClient *http.Client
}

func NewProxy(baseURL string) *Proxy {
	return &Proxy{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *Proxy) States(ctx context.Context) ([]model.StateStatus, error) {
	payload, err := p.fetchJSON(ctx, p.baseURL+"/states")
	if err != nil {
		return nil, err
	}
	return normalize.States(payload), nil
}

func (p *Proxy) NewsForState(ctx context.Context, code string) ([]model.NewsItem, error) {
	if code == "" {
		return []model.NewsItem{}, nil
	}

	endpoint := p.baseURL + "/news?state=" + url.QueryEscape(code)
	payload, err := p.fetchJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return normalize.News(payload), nil
}

func (p *Proxy) fetchJSON(ctx context.Context, endpoint string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("upstream request failed (%d): %s", resp.StatusCode, string(body))
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("upstream decode: %w", err)
	}
	return payload, nil
}
