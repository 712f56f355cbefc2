package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func newTestClient(srv *httptest.Server) *Client {
	client := NewClient("appTest", "test-token")
	client.baseURL = srv.URL
	client.httpClient = srv.Client()
	return client
}

func TestFetchAllSinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/appTest/states", r.URL.Path)
		assert.Equal(t, "Grid view", r.URL.Query().Get("view"))
		assert.Equal(t, "status", r.URL.Query().Get("sort[0][field]"))
		assert.Equal(t, "asc", r.URL.Query().Get("sort[0][direction]"))
		assert.Equal(t, []string{"code", "status"}, r.URL.Query()["fields[]"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"id": "rec1", "createdTime": "2024-10-01T00:00:00Z", "fields": map[string]any{"code": "CA"}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)

	records, err := client.FetchAll(context.Background(), "states", QueryOptions{
		View:   "Grid view",
		Fields: []string{"code", "status"},
		Sort:   []SortField{{Field: "status", Direction: "asc"}},
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(records))
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "CA", records[0].Fields["code"])
}

func TestFetchAllFollowsOffset(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("offset") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec1", "fields": map[string]any{}}},
				"offset":  "page2",
			})
			return
		}

		assert.Equal(t, "page2", r.URL.Query().Get("offset"))
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{"id": "rec2", "fields": map[string]any{}}},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)

	records, err := client.FetchAll(context.Background(), "news", QueryOptions{})

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, len(records))
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "rec2", records[1].ID)
}

func TestFetchAllMissingToken(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewClient("appTest", "")
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	_, err := client.FetchAll(context.Background(), "states", QueryOptions{})

	assert.Equal(t, true, errors.Is(err, ErrMissingToken))
	assert.Equal(t, 0, calls)
}

func TestFetchAllHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"NOT_AUTHORIZED"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)

	_, err := client.FetchAll(context.Background(), "states", QueryOptions{})

	var statusErr *StatusError
	assert.Equal(t, true, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, `{"error":"NOT_AUTHORIZED"}`, statusErr.Body)
}
