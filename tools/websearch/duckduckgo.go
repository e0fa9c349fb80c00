package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultDuckDuckGoURL is the host of the javascript-free DuckDuckGo endpoint
const DefaultDuckDuckGoURL = "https://html.duckduckgo.com"

const userAgent = "Mozilla/5.0 (compatible; workshop-crew/1.0)"

// DuckDuckGo scrapes the DuckDuckGo HTML results page.
type DuckDuckGo struct {
	baseURL    string
	region     string
	httpClient *http.Client
}

var _ Backend = (*DuckDuckGo)(nil)

func NewDuckDuckGo(baseURL, region string, clt *http.Client) *DuckDuckGo {
	if baseURL == "" {
		baseURL = DefaultDuckDuckGoURL
	}
	if clt == nil {
		clt = http.DefaultClient
	}
	return &DuckDuckGo{
		baseURL:    strings.TrimRight(baseURL, "/"),
		region:     region,
		httpClient: clt,
	}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Item, error) {
	form := url.Values{}
	form.Set("q", query)
	if d.region != "" {
		form.Set("kl", d.region)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/html/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", userAgent)
	httpResp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying duckduckgo: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from duckduckgo: %d", httpResp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo results: %w", err)
	}
	var items []Item
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find(".result__a").First()
		href, _ := link.Attr("href")
		items = append(items, Item{
			Title:   link.Text(),
			URL:     resolveLink(href),
			Content: s.Find(".result__snippet").Text(),
		})
		return maxResults <= 0 || len(items) < maxResults*2
	})
	return clean(items, maxResults), nil
}

// resolveLink unwraps DuckDuckGo redirect links ("//duckduckgo.com/l/?uddg=...")
func resolveLink(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "https"
	}
	return u.String()
}
