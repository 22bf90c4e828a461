package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searxngStub(t *testing.T, results []map[string]any, captured *url.Values) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		if captured != nil {
			*captured = r.URL.Query()
		}
		err := json.NewEncoder(w).Encode(map[string]any{"results": results})
		assert.NoError(t, err)
	}))
}

func TestSearch_WebSearch(t *testing.T) {
	var query url.Values
	server := searxngStub(t, []map[string]any{
		{"title": "Go", "url": "https://go.dev", "content": "The Go programming language."},
		{"title": "Go docs", "url": "https://go.dev/doc", "content": "Documentation."},
		{"title": "Go blog", "url": "https://go.dev/blog", "content": "Release notes and articles."},
	}, &query)
	defer server.Close()

	tool := NewSearch(server.URL).WebSearch()
	got, err := tool.Fn(context.Background(), map[string]any{
		"query":       "golang",
		"num_results": float64(2),
	})
	require.NoError(t, err)

	assert.Equal(t, "golang", query.Get("q"))
	assert.Equal(t, "json", query.Get("format"))

	expected := "Go: https://go.dev : The Go programming language.\n" +
		"Go docs: https://go.dev/doc : Documentation."
	assert.Equal(t, expected, got)
}

func TestSearch_WebSearchDefaultsAndEngines(t *testing.T) {
	results := make([]map[string]any, 0, 6)
	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		results = append(results, map[string]any{
			"title": title, "url": "https://example.com/" + title, "content": title,
		})
	}

	var query url.Values
	server := searxngStub(t, results, &query)
	defer server.Close()

	tool := NewSearch(server.URL).WebSearch()
	got, err := tool.Fn(context.Background(), map[string]any{
		"query":   "anything",
		"engines": "duckduckgo,brave",
	})
	require.NoError(t, err)

	assert.Equal(t, "duckduckgo,brave", query.Get("engines"))

	// Only the default number of results come back.
	assert.Len(t, strings.Split(got, "\n"), defaultNumResults)
}

func TestSearch_WebSearchNoResults(t *testing.T) {
	server := searxngStub(t, nil, nil)
	defer server.Close()

	tool := NewSearch(server.URL).WebSearch()
	got, err := tool.Fn(context.Background(), map[string]any{"query": "12xyz_nothing"})
	require.NoError(t, err)
	assert.Equal(t, "No results found.", got)
}

func TestSearch_WebSearchErrors(t *testing.T) {
	t.Run("missing query argument", func(t *testing.T) {
		server := searxngStub(t, nil, nil)
		defer server.Close()

		tool := NewSearch(server.URL).WebSearch()
		_, err := tool.Fn(context.Background(), map[string]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		tool := NewSearch(server.URL).WebSearch()
		_, err := tool.Fn(context.Background(), map[string]any{"query": "golang"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 403")
	})

	t.Run("unreachable instance", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close()

		tool := NewSearch(server.URL).WebSearch()
		_, err := tool.Fn(context.Background(), map[string]any{"query": "golang"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "searxng request failed")
	})

	t.Run("invalid body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write([]byte("<html>not json</html>"))
			assert.NoError(t, err)
		}))
		defer server.Close()

		tool := NewSearch(server.URL).WebSearch()
		_, err := tool.Fn(context.Background(), map[string]any{"query": "golang"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding search response")
	})
}
