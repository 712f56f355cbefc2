// Package airtable is a minimal client for the Airtable records API:
// bearer-token auth, field projection, sorting, and offset pagination.
package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// ErrMissingToken reports an absent personal access token. It is raised
// before any request is attempted.
var ErrMissingToken = errors.New("airtable: missing personal access token")

// StatusError is a non-2xx response, carrying the status code and body text.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("airtable request failed (%d): %s", e.StatusCode, e.Body)
}

// Record is one row of a table.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// SortField is one field+direction pair of a sort specification.
type SortField struct {
	Field     string
	Direction string
}

// QueryOptions selects and shapes the records a fetch returns.
type QueryOptions struct {
	View            string
	Fields          []string
	FilterByFormula string
	MaxRecords      int
	PageSize        int
	Sort            []SortField
}

type Client struct {
	baseURL    string
	baseID     string
	token      string
	httpClient *http.Client
}

func NewClient(baseID, token string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		baseID:     baseID,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type recordsPage struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// FetchAll retrieves every page of a table, following the offset
// continuation token until the server stops returning one.
func (c *Client) FetchAll(ctx context.Context, table string, opts QueryOptions) ([]Record, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	var records []Record
	offset := ""

	for {
		page, err := c.fetchPage(ctx, table, opts, offset)
		if err != nil {
			return nil, err
		}

		records = append(records, page.Records...)
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *Client) fetchPage(ctx context.Context, table string, opts QueryOptions, offset string) (*recordsPage, error) {
	params := url.Values{}
	if opts.View != "" {
		params.Set("view", opts.View)
	}
	if opts.MaxRecords > 0 {
		params.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
	}
	if opts.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	for _, field := range opts.Fields {
		params.Add("fields[]", field)
	}
	if opts.FilterByFormula != "" {
		params.Set("filterByFormula", opts.FilterByFormula)
	}
	for i, sort := range opts.Sort {
		if sort.Field != "" {
			params.Set(fmt.Sprintf("sort[%d][field]", i), sort.Field)
		}
		if sort.Direction != "" {
			params.Set(fmt.Sprintf("sort[%d][direction]", i), sort.Direction)
		}
	}
	if offset != "" {
		params.Set("offset", offset)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, url.PathEscape(table), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("airtable request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airtable fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var page recordsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("airtable decode: %w", err)
	}
	return &page, nil
}
