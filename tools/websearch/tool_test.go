package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

func duckResult(idx int) string {
	target := fmt.Sprintf("https://example.com/agents/%d?a=1&b=2", idx)
	return fmt.Sprintf(`<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=%s&amp;rut=abc">Agent result %d</a></h2>
  <a class="result__snippet" href="#">Multi-agent
     systems, part %d.</a>
</div>`, strings.ReplaceAll(strings.ReplaceAll(target, "&", "%26"), "?", "%3F"), idx, idx)
}

func startDuckDuckGo(t *testing.T, results int, queries *[]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		*queries = append(*queries, r.PostForm.Get("q"))
		var sb strings.Builder
		sb.WriteString(`<html><body><div id="links">`)
		sb.WriteString(`<div class="result result--ad"><a class="result__a" href="https://ads.example.com">Sponsored</a></div>`)
		for i := 1; i <= results; i++ {
			sb.WriteString(duckResult(i))
		}
		sb.WriteString(`</div></body></html>`)
		fmt.Fprint(w, sb.String())
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDuckDuckGoSearch(t *testing.T) {
	var queries []string
	srv := startDuckDuckGo(t, 8, &queries)
	tool := New(WithBackend(NewDuckDuckGo(srv.URL, "", srv.Client())))

	out, err := tool.Invoke(context.Background(), `{"query": "multi-agent systems"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"multi-agent systems"}, queries)
	assert.True(t, strings.HasPrefix(out, "1. title: Agent result 1\nlink: https://example.com/agents/1?a=1&b=2\nsnippet: Multi-agent systems, part 1."))
	assert.Contains(t, out, "5. title: Agent result 5")
	assert.NotContains(t, out, "6. title:")
	assert.NotContains(t, out, "Sponsored")
}

func TestDuckDuckGoNoResults(t *testing.T) {
	var queries []string
	srv := startDuckDuckGo(t, 0, &queries)
	tool := New(WithBackend(NewDuckDuckGo(srv.URL, "", srv.Client())))

	out, err := tool.Invoke(context.Background(), "nothing to see")
	require.NoError(t, err)
	assert.Equal(t, NoResults, out)
}

func TestSearxngSearch(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		got = append(got, r.URL.Query().Get("q"), r.URL.Query().Get("language"))
		json.NewEncoder(w).Encode(searxngResponse{
			Query: r.URL.Query().Get("q"),
			Results: []Item{
				{Title: "Result Missing Content", URL: "https://example.com/1"},
				{Content: "Result Missing Title", URL: "https://example.com/2"},
				{Title: "Result Missing URL", Content: "Some content"},
				{Title: "Valid Result", Content: "Some content", URL: "https://example.com/4"},
				{Title: "Over the limit", Content: "Some content", URL: "https://example.com/5"},
			},
		})
	}))
	defer srv.Close()

	tool, err := FromConfig(config.Search{
		Backend:    config.BackendSearxng,
		BaseURL:    srv.URL,
		MaxResults: 2,
		Language:   "en",
	})
	require.NoError(t, err)
	out, err := tool.Invoke(context.Background(), "agent frameworks")
	require.NoError(t, err)
	assert.Equal(t, []string{"agent frameworks", "en"}, got)
	assert.Equal(t, "1. title: Result Missing Content\nlink: https://example.com/1\nsnippet: \n\n"+
		"2. title: Valid Result\nlink: https://example.com/4\nsnippet: Some content", out)
}

func TestUpstreamFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	for _, backend := range []Backend{
		NewDuckDuckGo(srv.URL, "", srv.Client()),
		NewSearxng(srv.URL, "", srv.Client()),
	} {
		tool := New(WithBackend(backend))
		_, err := tool.Invoke(context.Background(), "rate limited")
		var target *errs.UpstreamServiceError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "web search", target.Service)
		assert.Contains(t, err.Error(), "429")
		assert.Equal(t, int64(1), tool.Failures())
	}
}

func TestEmptyQuery(t *testing.T) {
	tool := New(WithBackend(NewSearxng("http://127.0.0.1:1", "", nil)))
	_, err := tool.Invoke(context.Background(), "   ")
	assert.True(t, errs.IsToolInput(err))
}

func TestUnknownBackend(t *testing.T) {
	_, err := FromConfig(config.Search{Backend: "bing"})
	var target *errs.ConfigurationError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "search.backend", target.Field)

	_, err = FromConfig(config.Search{Backend: config.BackendSearxng})
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "search.base_url", target.Field)

	tool, err := FromConfig(config.Search{Backend: config.BackendDuckDuckGo, MaxResults: 3})
	require.NoError(t, err)
	ddg, ok := tool.backend.(*DuckDuckGo)
	require.True(t, ok)
	assert.Equal(t, DefaultDuckDuckGoURL, ddg.baseURL)
}

func TestInvokeAsync(t *testing.T) {
	var queries []string
	srv := startDuckDuckGo(t, 2, &queries)
	tool := New(WithBackend(NewDuckDuckGo(srv.URL, "", srv.Client())), WithMaxResults(1))

	ch, err := tool.InvokeAsync(context.Background(), "async query")
	require.NoError(t, err)
	res := <-ch
	require.NoError(t, res.Err)
	assert.Equal(t, "1. title: Agent result 1\nlink: https://example.com/agents/1?a=1&b=2\nsnippet: Multi-agent systems, part 1.", res.Output)
	_, open := <-ch
	assert.False(t, open)
}
