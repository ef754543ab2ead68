package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-lead-sourcer/internal/search"

	"github.com/PuerkitoBio/goquery"
)

const defaultEndpoint = "https://html.duckduckgo.com/html/"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client queries the no-JS HTML endpoint of DuckDuckGo
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

func (c *Client) Name() string {
	return "duckduckgo"
}

func (c *Client) Search(ctx context.Context, query string, n int) ([]search.Hit, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	// DuckDuckGo answers throttled clients with 202 and an anomaly page
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusAccepted {
		return nil, search.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformed, err)
	}

	return parseResults(doc, n), nil
}

func parseResults(doc *goquery.Document, n int) []search.Hit {
	var hits []search.Hit
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if n > 0 && len(hits) >= n {
			return false
		}
		// sponsored results carry the ad class
		if s.HasClass("result--ad") {
			return true
		}

		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}

		hits = append(hits, search.Hit{
			URL:     decodeRedirect(href),
			Title:   strings.TrimSpace(link.Text()),
			Snippet: strings.TrimSpace(s.Find(".result__snippet").Text()),
		})
		return true
	})
	return hits
}

// decodeRedirect unwraps //duckduckgo.com/l/?uddg=<target> links.
func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}
