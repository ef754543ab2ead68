// Search query catalog: the default lists ship embedded, a YAML file
// can replace any of them.

package queries

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"go-lead-sourcer/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const (
	DialectGoogle     = "google"
	DialectDuckDuckGo = "duckduckgo"
)

var ErrBatchOutOfRange = errors.New("batch out of range")

// Query is one search string and the role it sources for
type Query struct {
	Text string
	Role models.Role
}

type Lists struct {
	SDR []string `yaml:"sdr"`
	AE  []string `yaml:"ae"`
}

type Catalog struct {
	Google     Lists `yaml:"google"`
	DuckDuckGo Lists `yaml:"duckduckgo"`
}

// Default returns a fresh copy of the embedded catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded query catalog: %v", err))
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse query catalog: %w", err)
	}
	return &c, nil
}

// Load reads overrides from path on top of the default catalog.
// Every non-empty list in the file replaces its default; an empty path or a
// missing file yields the defaults.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read query catalog: %w", err)
	}

	override, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.Google.merge(override.Google)
	c.DuckDuckGo.merge(override.DuckDuckGo)
	return c, nil
}

func (l *Lists) merge(o Lists) {
	if len(o.SDR) > 0 {
		l.SDR = o.SDR
	}
	if len(o.AE) > 0 {
		l.AE = o.AE
	}
}

func (c *Catalog) lists(dialect string) Lists {
	if dialect == DialectDuckDuckGo {
		return c.DuckDuckGo
	}
	return c.Google
}

// Select lists the queries of one dialect. "both" runs the SDR list first.
func (c *Catalog) Select(dialect string, rt models.RoleType) []Query {
	l := c.lists(dialect)
	var out []Query
	if rt == models.RoleTypeSDR || rt == models.RoleTypeBoth {
		out = appendTagged(out, l.SDR, models.RoleSDR)
	}
	if rt == models.RoleTypeAE || rt == models.RoleTypeBoth {
		out = appendTagged(out, l.AE, models.RoleAE)
	}
	return out
}

func appendTagged(out []Query, texts []string, role models.Role) []Query {
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, Query{Text: t, Role: role})
		}
	}
	return out
}

// RoleOf tags a query: AE when it appears in any AE list, SDR otherwise
func (c *Catalog) RoleOf(text string) models.Role {
	text = strings.TrimSpace(text)
	for _, l := range []Lists{c.Google, c.DuckDuckGo} {
		for _, q := range l.AE {
			if strings.TrimSpace(q) == text {
				return models.RoleAE
			}
		}
	}
	return models.RoleSDR
}

// BatchCount is the number of batches of size covering n queries
func BatchCount(n, size int) int {
	if size <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Batch returns the k-th (1-based) slice of size queries
func Batch(qs []Query, k, size int) ([]Query, error) {
	total := BatchCount(len(qs), size)
	if k < 1 || k > total {
		return nil, fmt.Errorf("%w: batch %d of %d", ErrBatchOutOfRange, k, total)
	}
	start := (k - 1) * size
	end := min(start+size, len(qs))
	return qs[start:end], nil
}
