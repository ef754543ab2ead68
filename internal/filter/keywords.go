package filter

import (
	"strings"

	"go-lead-sourcer/internal/models"
)

// Verdict is the outcome of screening one candidate
type Verdict string

const (
	Accepted             Verdict = "accepted"
	RejectedSenior       Verdict = "filtered_senior"
	RejectedExistingSDR  Verdict = "filtered_existing_sdr"
	RejectedUnaffiliated Verdict = "filtered_non_utah"
)

// Screen runs the retention gates in order: seniority, incumbent SDR
// (only for SDR searches), then Utah affiliation.
func Screen(c models.Candidate, queryRole models.Role) Verdict {
	//must not be an executive
	if IsTooSenior(c.Headline) {
		return RejectedSenior
	}

	//SDR searches want people who have not done the job yet
	if queryRole == models.RoleSDR && IsExistingSDR(c.Headline, c.Snippet) {
		return RejectedExistingSDR
	}

	//must show a Utah connection
	if !IsAffiliated(c.Headline, c.Snippet) {
		return RejectedUnaffiliated
	}

	return Accepted
}

// IsTooSenior reports executive titles. Founder/owner titles are always allowed.
func IsTooSenior(headline string) bool {
	if headline == "" {
		return false
	}
	text := strings.ToLower(headline)
	if anyMatch(allowedTitles, text) {
		return false
	}
	return anyMatch(excludedTitles, text)
}

// IsExistingSDR reports current or past SDR/BDR roles in headline and snippet.
// Without a headline there is nothing to judge.
func IsExistingSDR(headline, snippet string) bool {
	if headline == "" {
		return false
	}
	text := strings.ToLower(headline + " " + snippet)
	if anyMatch(allowedTitles, text) {
		return false
	}
	return anyMatch(existingSDRTitles, text)
}

// IsAffiliated reports a Utah location, college or tech company in the text.
// The source query is never used as evidence.
func IsAffiliated(headline, snippet string) bool {
	text := strings.ToLower(headline + " " + snippet)
	return anyMatch(utahLocations, text) || anyMatch(utahColleges, text) || mentionsCompany(text)
}
