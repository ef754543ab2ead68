package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// UserAgent is sent by every context the manager opens
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Manager owns one playwright driver and one Chromium instance
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewManager(headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	return &Manager{pw: pw, browser: b}, nil
}

// NewPage opens a fresh context carrying the given cookies and returns its first page
func (m *Manager) NewPage(cookies []playwright.OptionalCookie) (playwright.Page, error) {
	bctx, err := m.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(UserAgent),
		Locale:    playwright.String("en-US"),
		Viewport:  &playwright.Size{Width: 1366, Height: 768},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := bctx.AddCookies(cookies); err != nil {
			_ = bctx.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return page, nil
}

func (m *Manager) Close() error {
	if err := m.browser.Close(); err != nil {
		_ = m.pw.Stop()
		return fmt.Errorf("could not close browser: %w", err)
	}
	return m.pw.Stop()
}
