package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iterbot/iterbot"
	"github.com/iterbot/iterbot/schema"
)

// DefaultSearXNGURL is where a local SearXNG instance usually listens.
const DefaultSearXNGURL = "http://127.0.0.1:8080"

// defaultNumResults bounds how many results feed back into the loop.
// Observations grow the conversation on every iteration, so the default
// stays small.
const defaultNumResults = 4

// Search queries a SearXNG metasearch instance.
//
// SearXNG must run with its JSON output format enabled
// (search.formats: [html, json] in settings.yml).
type Search struct {
	baseURL string
	client  *http.Client
}

// NewSearch creates a Search against the given SearXNG base URL. An empty
// URL falls back to DefaultSearXNGURL.
func NewSearch(baseURL string) *Search {
	if baseURL == "" {
		baseURL = DefaultSearXNGURL
	}
	return &Search{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// WithHTTPClient replaces the HTTP client.
func (s *Search) WithHTTPClient(client *http.Client) *Search {
	s.client = client
	return s
}

var searchSchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
	"query":       schema.String("The search query.").MinLength(1),
	"num_results": schema.Integer("How many results to return.").Min(1).Max(20).Default(defaultNumResults),
	"engines":     schema.String("Comma-separated SearXNG engines to restrict the search to."),
}, "query"))

// WebSearch returns the web search tool. Results render one per line as
// "title: url : content"; an empty result list reads "No results found."
func (s *Search) WebSearch() iterbot.Tool {
	return iterbot.Tool{
		Name:        "search_web",
		Description: "Searches the web and returns the top results.",
		Fn:          s.search,
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

func (s *Search) search(ctx context.Context, args map[string]any) (string, error) {
	if err := searchSchema.Validate(args); err != nil {
		return "", err
	}

	query, _ := args["query"].(string)
	numResults := defaultNumResults
	if n, ok := args["num_results"].(float64); ok && n > 0 {
		numResults = int(n)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	if engines, ok := args["engines"].(string); ok && engines != "" {
		params.Set("engines", engines)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building search request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("searxng request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("searxng returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading search response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding search response: %w", err)
	}

	return formatResults(parsed.Results, numResults), nil
}

func formatResults(results []searchResult, limit int) string {
	if len(results) == 0 {
		return "No results found."
	}
	if len(results) > limit {
		results = results[:limit]
	}

	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s : %s", r.Title, r.URL, r.Content)
	}
	return sb.String()
}
