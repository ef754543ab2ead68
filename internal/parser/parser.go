// Turns raw search hits into candidate records.
// Parsing never fails: missing signals leave fields empty.

package parser

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/search"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxHeadline caps a headline taken from a snippet, in runes.
const MaxHeadline = 200

var (
	brandSuffixRegex = regexp.MustCompile(`(?i)\s*[|\-–—]\s*LinkedIn.*$`)
	spacedDashRegex  = regexp.MustCompile(`\s+[-–—]\s+`)
	dashRegex        = regexp.MustCompile(`\s*[-–—]\s*`)
	profileSlugRegex = regexp.MustCompile(`(?i)linkedin\.com/in/([^/?#]+)`)
	hexSuffixRegex   = regexp.MustCompile(`-[a-f0-9]{5,}$`)
	digitSuffixRegex = regexp.MustCompile(`-\d+$`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

var titleCaser = cases.Title(language.English)

// IsProfileURL reports whether u points at a LinkedIn member profile
func IsProfileURL(u string) bool {
	return strings.Contains(strings.ToLower(u), "linkedin.com/in/")
}

// CleanURL percent-decodes the URL and drops its query string. Case is kept.
func CleanURL(u string) string {
	u = strings.TrimSpace(u)
	if decoded, err := url.PathUnescape(u); err == nil {
		u = decoded
	}
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return u
}

// NameFromURL guesses a display name from the /in/<slug> path segment,
// e.g. linkedin.com/in/jane-doe-4af821b -> "Jane Doe".
func NameFromURL(u string) string {
	m := profileSlugRegex.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	slug := strings.ToLower(m[1])
	if decoded, err := url.PathUnescape(slug); err == nil {
		slug = decoded
	}
	slug = hexSuffixRegex.ReplaceAllString(slug, "")
	slug = digitSuffixRegex.ReplaceAllString(slug, "")
	slug = strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	slug = strings.Join(strings.Fields(slug), " ")
	if slug == "" {
		return ""
	}
	return titleCaser.String(slug)
}

// SplitTitle strips the site brand and splits "Name - Headline".
// A spaced dash is preferred so hyphenated names survive; a bare dash is the fallback.
func SplitTitle(title string) (name, headline string) {
	clean := strings.TrimSpace(brandSuffixRegex.ReplaceAllString(title, ""))
	if clean == "" {
		return "", ""
	}

	sep := spacedDashRegex.FindStringIndex(clean)
	if sep == nil {
		sep = dashRegex.FindStringIndex(clean)
	}
	if sep == nil {
		return clean, ""
	}
	return strings.TrimSpace(clean[:sep[0]]), strings.TrimSpace(clean[sep[1]:])
}

// SnippetHeadline collapses whitespace and caps the text at MaxHeadline runes.
func SnippetHeadline(snippet string) string {
	s := strings.TrimSpace(whitespaceRegex.ReplaceAllString(snippet, " "))
	if utf8.RuneCountInString(s) <= MaxHeadline {
		return s
	}
	r := []rune(s)
	return string(r[:MaxHeadline]) + "..."
}

// Parse builds a candidate from one hit. Role and experience are left to the classifier.
func Parse(hit search.Hit, sourceQuery string) models.Candidate {
	profileURL := CleanURL(hit.URL)
	name, headline := SplitTitle(hit.Title)

	if name == "" {
		name = NameFromURL(profileURL)
	}
	if headline == "" && hit.Snippet != "" {
		headline = SnippetHeadline(hit.Snippet)
	}

	return models.Candidate{
		FullName:    name,
		ProfileURL:  profileURL,
		Headline:    headline,
		Snippet:     strings.TrimSpace(hit.Snippet),
		SourceQuery: sourceQuery,
	}
}
