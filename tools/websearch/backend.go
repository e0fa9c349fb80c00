package websearch

import (
	"context"
	"fmt"
	"strings"
)

// Item is a single search hit
type Item struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content,omitempty"`
}

func (i Item) String() string {
	return fmt.Sprintf("title: %s\nlink: %s\nsnippet: %s", i.Title, i.URL, i.Content)
}

// Backend fetches results for a query from a search engine.
type Backend interface {
	Search(ctx context.Context, query string, maxResults int) ([]Item, error)
}

// Format renders items as a numbered list, or NoResults when there are none.
func Format(items []Item) string {
	if len(items) == 0 {
		return NoResults
	}
	parts := make([]string, 0, len(items))
	for idx, item := range items {
		parts = append(parts, fmt.Sprintf("%d. %s", idx+1, item))
	}
	return strings.Join(parts, "\n\n")
}

// clean drops items without a title or link and caps the list at maxResults
func clean(items []Item, maxResults int) []Item {
	ret := make([]Item, 0, len(items))
	for _, item := range items {
		item.Title = strings.TrimSpace(item.Title)
		item.URL = strings.TrimSpace(item.URL)
		item.Content = strings.Join(strings.Fields(item.Content), " ")
		if item.Title == "" || item.URL == "" {
			continue
		}
		ret = append(ret, item)
		if maxResults > 0 && len(ret) == maxResults {
			break
		}
	}
	return ret
}
