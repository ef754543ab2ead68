// Common search types
// Every provider returns raw hits; parsing happens elsewhere

package search

import (
	"context"
	"errors"
)

var (
	ErrRateLimited = errors.New("rate limited by search provider")
	ErrMalformed   = errors.New("malformed search response")
)

// Hit is one organic search result
type Hit struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Provider defines the interface that all search backends must implement
type Provider interface {
	//Search runs one query, asking for about n results
	Search(ctx context.Context, query string, n int) ([]Hit, error)

	//Name is the provider name (serpapi, google, duckduckgo)
	Name() string
}

// Dialect tells which query catalog suits a provider.
// DuckDuckGo ignores the site: operator, the others honor it.
func Dialect(p Provider) string {
	if p != nil && p.Name() == "duckduckgo" {
		return "duckduckgo"
	}
	return "google"
}
