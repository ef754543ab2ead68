package google

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"go-lead-sourcer/internal/browser"
	"go-lead-sourcer/internal/search"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

const searchURL = "https://www.google.com/search"

// Client runs Google searches in a real browser page
type Client struct {
	page  playwright.Page
	shots *browser.ScreenshotDebugger
}

func NewClient(page playwright.Page, shots *browser.ScreenshotDebugger) *Client {
	return &Client{page: page, shots: shots}
}

func (c *Client) Name() string {
	return "google"
}

func (c *Client) Search(ctx context.Context, query string, n int) ([]search.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(n))
	params.Set("hl", "en")

	if _, err := c.page.Goto(searchURL+"?"+params.Encode(), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to load google results: %w", err)
	}

	// unusual-traffic interstitial
	if strings.Contains(c.page.URL(), "/sorry/") {
		c.capture("google_sorry", "Google blocked the query with a captcha page")
		return nil, search.ErrRateLimited
	}

	if _, err := c.page.WaitForSelector("div#search", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		c.capture("google_empty", "Result container not found")
		return nil, nil
	}
	browser.RandomDelay(800, 1600)
	if err := browser.MouseJiggle(c.page); err != nil {
		log.Printf("    ⚠️ Mouse move failed: %v", err)
	}
	if err := browser.HumanScroll(c.page); err != nil {
		log.Printf("    ⚠️ Scroll failed: %v", err)
	}

	html, err := c.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	return ParseResults(html, n)
}

func (c *Client) capture(name, message string) {
	if c.shots == nil {
		return
	}
	_ = c.shots.CaptureAndLog(c.page, name, message)
}

// ParseResults extracts organic hits from a Google result page.
func ParseResults(html string, n int) ([]search.Hit, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrMalformed, err)
	}

	var hits []search.Hit
	seen := make(map[string]bool)
	doc.Find("div#search a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if n > 0 && len(hits) >= n {
			return false
		}
		h3 := s.Find("h3").First()
		if h3.Length() == 0 {
			return true
		}
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		link := unwrapRedirect(href)
		if !strings.HasPrefix(link, "http") || seen[link] {
			return true
		}
		seen[link] = true

		block := s.Closest("div.g, div.MjjYud")
		snippet := block.Find("div.VwiC3b, span.aCOpRe, div[data-sncf]").First().Text()

		hits = append(hits, search.Hit{
			URL:     link,
			Title:   strings.TrimSpace(h3.Text()),
			Snippet: strings.TrimSpace(snippet),
		})
		return true
	})
	return hits, nil
}

// unwrapRedirect turns /url?q=<target>&sa=... into the target.
func unwrapRedirect(href string) string {
	if !strings.HasPrefix(href, "/url?") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if q := u.Query().Get("q"); q != "" {
		return q
	}
	return href
}
