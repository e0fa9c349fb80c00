package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Searxng queries the JSON API of a SearxNG instance.
type Searxng struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Backend = (*Searxng)(nil)

// searxngResponse is the body of GET /search?format=json
type searxngResponse struct {
	Query           string `json:"query"`
	NumberOfResults int    `json:"number_of_results"`
	Results         []Item `json:"results"`
}

func NewSearxng(baseURL, language string, clt *http.Client) *Searxng {
	if clt == nil {
		clt = http.DefaultClient
	}
	return &Searxng{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: clt,
	}
}

func (s *Searxng) Search(ctx context.Context, query string, maxResults int) ([]Item, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("safesearch", "0")
	values.Set("format", "json")
	values.Set("categories", "general")
	if s.language != "" {
		values.Set("language", s.language)
	}
	searchURL := fmt.Sprintf("%s/search?%s", s.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying searxng: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from searxng: %d", httpResp.StatusCode)
	}
	var resp searxngResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode searxng response: %w", err)
	}
	return clean(resp.Results, maxResults), nil
}
