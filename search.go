package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Searcher returns a short free-text digest for a query. A failed search is
// an empty digest, never a player-visible error.
type Searcher interface {
	Search(ctx context.Context, query string) string
}

type instantAnswer struct {
	Abstract      string `json:"Abstract"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

// SearchClient wraps the DuckDuckGo instant-answer API, used to give the
// oracle some grounding context about the secret word.
type SearchClient struct {
	httpClient *http.Client
	apiURL     string
}

func newSearchClient(cfg *Config) *SearchClient {
	return &SearchClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     cfg.searchURL,
	}
}

func (c *SearchClient) Search(ctx context.Context, query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return ""
	}

	results := make([]string, 0, 6)
	if answer.Abstract != "" {
		results = append(results, answer.Abstract)
	}
	for i, topic := range answer.RelatedTopics {
		if i >= 5 {
			break
		}
		if topic.Text != "" {
			results = append(results, topic.Text)
		}
	}

	return strings.Join(results, " ")
}
