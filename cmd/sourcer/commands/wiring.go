package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-lead-sourcer/internal/browser"
	"go-lead-sourcer/internal/config"
	"go-lead-sourcer/internal/database"
	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/pacer"
	"go-lead-sourcer/internal/persist"
	"go-lead-sourcer/internal/pipeline"
	"go-lead-sourcer/internal/queries"
	"go-lead-sourcer/internal/reporter"
	"go-lead-sourcer/internal/search"
	"go-lead-sourcer/internal/search/duckduckgo"
	"go-lead-sourcer/internal/search/google"
	"go-lead-sourcer/internal/search/serpapi"
	"go-lead-sourcer/internal/sheets"
)

// app holds what one command invocation opened
type app struct {
	cfg     *config.Config
	catalog *queries.Catalog
	closers []func()
}

func loadApp() (*app, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, err
	}
	catalog, err := queries.Load(cfg.QueriesPath)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, catalog: catalog}, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// dialect tells which query list the configured provider would use,
// without opening it
func (a *app) dialect() string {
	switch a.cfg.SearchProvider {
	case "duckduckgo":
		return queries.DialectDuckDuckGo
	default:
		return queries.DialectGoogle
	}
}

func (a *app) provider() (search.Provider, error) {
	switch a.cfg.SearchProvider {
	case "serpapi":
		if a.cfg.SerpAPIKey == "" {
			return nil, errors.New("search_provider is serpapi but SERPAPI_KEY is not set")
		}
		return serpapi.NewClient(a.cfg.SerpAPIKey), nil
	case "google":
		return a.openGoogle()
	case "duckduckgo":
		return duckduckgo.NewClient(), nil
	}

	if a.cfg.SerpAPIKey != "" {
		log.Println("✅ Using SerpAPI (Google results)")
		return serpapi.NewClient(a.cfg.SerpAPIKey), nil
	}
	p, err := a.openGoogle()
	if err == nil {
		log.Println("✅ Using Google via headless browser")
		return p, nil
	}
	log.Printf("⚠️ Browser unavailable (%v), falling back to DuckDuckGo", err)
	return duckduckgo.NewClient(), nil
}

func (a *app) openGoogle() (search.Provider, error) {
	mgr, err := browser.NewManager(a.cfg.Headless)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := mgr.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser: %v", err)
		}
	})

	cookies, err := browser.LoadCookies(a.cfg.CookiesPath)
	if err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
	} else if len(cookies) > 0 {
		log.Printf("🍪 Loaded %d cookies", len(cookies))
	}

	page, err := mgr.NewPage(cookies)
	if err != nil {
		return nil, err
	}
	return google.NewClient(page, browser.NewScreenshotDebugger(a.cfg.ScreenshotDir)), nil
}

func (a *app) pacer() *pacer.Pacer {
	return pacer.New(a.cfg.MinDelay, a.cfg.MaxDelay, a.cfg.BatchSize, a.cfg.BatchPause)
}

// store is the opened remote: exactly one of ws and repo is set
type store struct {
	ws   *sheets.Worksheet
	repo *database.Repository
}

func (s *store) remote() persist.Remote {
	if s.repo != nil {
		return s.repo
	}
	return persist.NewSheetRemote(s.ws)
}

// openStore connects the configured remote. It returns nil when remote sync
// is off or fails to start; the caller then works on the CSV alone.
func (a *app) openStore(ctx context.Context) *store {
	kind, reason := a.cfg.ResolveRemote()
	switch kind {
	case config.RemoteSheets:
		log.Println("📊 Connecting to Google Sheets...")
		svc, err := sheets.NewService(ctx, a.cfg.CredentialsFile)
		if err != nil {
			log.Printf("⚠️ %v. Continuing with local CSV only.", err)
			return nil
		}
		ws := sheets.New(svc, a.cfg.SheetID, a.cfg.SheetName)
		if err := ws.EnsureSheet(ctx, models.Header); err != nil {
			log.Printf("⚠️ %v. Continuing with local CSV only.", err)
			return nil
		}
		return &store{ws: ws}

	case config.RemotePostgres:
		log.Println("🐘 Connecting to Postgres...")
		repo, err := database.ConnectDB(ctx, a.cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ %v. Continuing with local CSV only.", err)
			return nil
		}
		a.closers = append(a.closers, repo.Close)
		if err := repo.Migrate(ctx); err != nil {
			log.Printf("⚠️ %v. Continuing with local CSV only.", err)
			return nil
		}
		return &store{repo: repo}
	}

	log.Printf("ℹ️ Remote sync skipped: %s", reason)
	return nil
}

// uploader opens the remote and indexes what it holds
func (a *app) uploader(ctx context.Context) *persist.Uploader {
	st := a.openStore(ctx)
	if st == nil {
		return nil
	}
	remote := st.remote()
	n, err := remote.Prepare(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to read existing candidates from %s: %v. Continuing with local CSV only.", remote.Name(), err)
		return nil
	}
	log.Printf("   ✓ Connected! %d existing candidates in %s", n, remote.Name())
	return persist.NewUploader(remote)
}

func (a *app) notifier() pipeline.Notifier {
	if !a.cfg.TelegramEnabled() {
		return nil
	}
	r, err := reporter.NewTelegramReporter(a.cfg.TelegramToken, a.cfg.TelegramChatID)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return nil
	}
	return r
}

// sourcer wires provider, pacer, remote and notifier into a pipeline
func (a *app) sourcer(ctx context.Context) (*pipeline.Sourcer, error) {
	provider, err := a.provider()
	if err != nil {
		return nil, fmt.Errorf("no search provider: %w", err)
	}
	s := pipeline.NewSourcer(provider, a.pacer()).
		WithResultsPerQuery(a.cfg.ResultsPerQuery).
		WithBackup(a.cfg.CSVPath)
	if u := a.uploader(ctx); u != nil {
		s.WithUploader(u)
	}
	if n := a.notifier(); n != nil {
		s.WithNotifier(n)
	}
	return s, nil
}
