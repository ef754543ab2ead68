package models

import (
	"strings"
	"unicode"
)

// Role is the classifier's verdict on which seat a candidate fits.
type Role uint8

const (
	// RoleUnknown only exists before classification; it is never written out.
	RoleUnknown Role = iota
	RoleSDR
	RoleAE
	RoleEither
)

func (r Role) String() string {
	switch r {
	case RoleSDR:
		return "SDR"
	case RoleAE:
		return "AE"
	case RoleEither:
		return "SDR/AE"
	default:
		return ""
	}
}

// ParseRole reads a stored "Role Fit" cell. Unrecognized text yields RoleUnknown.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "SDR":
		return RoleSDR
	case "AE":
		return RoleAE
	case "SDR/AE", "AE/SDR", "BOTH", "EITHER":
		return RoleEither
	default:
		return RoleUnknown
	}
}

// RoleType selects which query catalog a sourcing pass runs.
type RoleType string

const (
	RoleTypeSDR  RoleType = "sdr"
	RoleTypeAE   RoleType = "ae"
	RoleTypeBoth RoleType = "both"
)

// ParseRoleType accepts sdr, ae or both (case-insensitive).
func ParseRoleType(s string) (RoleType, bool) {
	switch RoleType(strings.ToLower(strings.TrimSpace(s))) {
	case RoleTypeSDR:
		return RoleTypeSDR, true
	case RoleTypeAE:
		return RoleTypeAE, true
	case RoleTypeBoth, "":
		return RoleTypeBoth, true
	}
	return "", false
}

// Outcome is what happened to one record on the remote store.
type Outcome string

const (
	OutcomeNew     Outcome = "new"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
)

// Candidate is one person discovered through search.
type Candidate struct {
	FullName    string `json:"full_name"`
	ProfileURL  string `json:"linkedin_url"`
	Headline    string `json:"headline"`
	Snippet     string `json:"snippet,omitempty"`
	Role        Role   `json:"-"`
	Experience  string `json:"years_of_experience,omitempty"`
	SourceQuery string `json:"source_query,omitempty"`

	// Columns owned by people working the sheet; carried through rewrites untouched.
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status,omitempty"`
	AIDraft   string `json:"ai_draft,omitempty"`
	DateAdded string `json:"date_added,omitempty"`
}

// Key is the deduplication key: the normalized profile URL.
func (c Candidate) Key() string {
	return NormalizeURL(c.ProfileURL)
}

// NormalizeURL lower-cases the URL and drops the query string, fragment and
// trailing slashes. NormalizeURL(NormalizeURL(u)) == NormalizeURL(u).
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return strings.TrimRightFunc(strings.ToLower(u), func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
}
