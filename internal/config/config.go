// Load envs from .env
// Load YAML config
// Env vars override the file
// Provide default values, then validate

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// remote store choices
const (
	RemoteAuto     = "auto"
	RemoteSheets   = "sheets"
	RemotePostgres = "postgres"
	RemoteNone     = "none"
)

type Config struct {
	//Search
	SearchProvider  string        `yaml:"search_provider" validate:"oneof=auto serpapi google duckduckgo"`
	SerpAPIKey      string        `yaml:"serpapi_key"`
	ResultsPerQuery int           `yaml:"results_per_query" validate:"min=1,max=100"`
	MinDelay        time.Duration `yaml:"min_delay" validate:"min=0"`
	MaxDelay        time.Duration `yaml:"max_delay" validate:"gtefield=MinDelay"`
	BatchSize       int           `yaml:"batch_size" validate:"min=1"`
	BatchPause      time.Duration `yaml:"batch_pause" validate:"min=0"`
	QueriesPath     string        `yaml:"queries_path"`

	//Browser (google provider)
	Headless      bool   `yaml:"headless"`
	CookiesPath   string `yaml:"cookies_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`

	//Storage
	Remote          string `yaml:"remote" validate:"oneof=auto sheets postgres none"`
	SheetID         string `yaml:"google_sheet_id"`
	SheetName       string `yaml:"sheet_name" validate:"required"`
	CredentialsFile string `yaml:"google_credentials_file"`
	DatabaseURL     string `yaml:"database_url"`
	CSVPath         string `yaml:"candidates_csv" validate:"required"`

	//Notifications
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

// Default holds the values used when neither the file nor the env sets one
func Default() *Config {
	return &Config{
		SearchProvider:  "auto",
		ResultsPerQuery: 15,
		MinDelay:        2 * time.Second,
		MaxDelay:        4 * time.Second,
		BatchSize:       8,
		BatchPause:      10 * time.Second,
		Headless:        true,
		ScreenshotDir:   "./logs/screenshots",
		Remote:          RemoteAuto,
		SheetName:       "candidates",
		CredentialsFile: "credentials.json",
		CSVPath:         "candidates.csv",
	}
}

func Load() (*Config, error) {
	return LoadFrom(DefaultPath)
}

// LoadFrom reads .env, then the YAML file at path (optional), then env overrides
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("ℹ️ No config file at %s, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strOverrides := map[string]*string{
		"SERPAPI_KEY":             &c.SerpAPIKey,
		"SEARCH_PROVIDER":         &c.SearchProvider,
		"GOOGLE_SHEET_ID":         &c.SheetID,
		"GOOGLE_SHEET_NAME":       &c.SheetName,
		"GOOGLE_CREDENTIALS_FILE": &c.CredentialsFile,
		"DATABASE_URL":            &c.DatabaseURL,
		"REMOTE_STORE":            &c.Remote,
		"TELEGRAM_BOT_TOKEN":      &c.TelegramToken,
		"CANDIDATES_CSV":          &c.CSVPath,
		"QUERIES_PATH":            &c.QueriesPath,
		"COOKIES_PATH":            &c.CookiesPath,
	}
	for key, dst := range strOverrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}

	if headless := os.Getenv("HEADLESS"); headless != "" {
		b, err := strconv.ParseBool(headless)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		c.Headless = b
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and choices
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ResolveRemote picks the remote store. It returns RemoteNone and the reason
// when nothing usable is configured; that is not an error.
func (c *Config) ResolveRemote() (string, string) {
	sheetsReason := c.sheetsMissing()
	switch c.Remote {
	case RemoteNone:
		return RemoteNone, "remote sync disabled in config"
	case RemoteSheets:
		if sheetsReason != "" {
			return RemoteNone, sheetsReason
		}
		return RemoteSheets, ""
	case RemotePostgres:
		if c.DatabaseURL == "" {
			return RemoteNone, "DATABASE_URL not set"
		}
		return RemotePostgres, ""
	}

	if sheetsReason == "" {
		return RemoteSheets, ""
	}
	if c.DatabaseURL != "" {
		return RemotePostgres, ""
	}
	return RemoteNone, sheetsReason
}

// RemoteEnabled reports whether sourced rows leave the machine
func (c *Config) RemoteEnabled() bool {
	kind, _ := c.ResolveRemote()
	return kind != RemoteNone
}

func (c *Config) sheetsMissing() string {
	if c.SheetID == "" {
		return "no Google Sheet ID configured, set GOOGLE_SHEET_ID"
	}
	if _, err := os.Stat(c.CredentialsFile); err != nil {
		return fmt.Sprintf("credentials file not found: %s", c.CredentialsFile)
	}
	return ""
}

// TelegramEnabled reports whether run summaries can be posted
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
