package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// earliest graduation year treated as plausible
const minGradYear = 2015

var (
	// "5 years experience", "3+ years in saas", "2-3 years", "4+ years", "6 years sales"
	explicitYearsRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*\+?\s*years?\s+(?:of\s+)?(?:experience|exp)`),
		regexp.MustCompile(`(\d+)\s*\+?\s*years?\s+in\s+(?:sales|saas|tech|b2b)`),
		regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*years?`),
		regexp.MustCompile(`(\d+)\s*\+\s*years?`),
		regexp.MustCompile(`(\d+)\s*years?\s+(?:sales|saas|b2b|account)`),
	}

	gradYearRegexes = []*regexp.Regexp{
		regexp.MustCompile(`class of ['"]?(\d{4})`),
		regexp.MustCompile(`graduated?\s*[:\-]?\s*(\d{4})`),
		regexp.MustCompile(`['"](\d{2})\b`),
		regexp.MustCompile(`\b(20\d{2})\s+(?:graduate|grad|alumni)`),
	}

	yearsAtRegex = regexp.MustCompile(`(\d+)\s*(?:yr|year)s?\s+at\b`)
	sinceRegex   = regexp.MustCompile(`since\s+(\d{4})\b`)

	salesRoleRegex = regexp.MustCompile(`\b(sales|account|business\s+development)\b`)
	provenRegex    = regexp.MustCompile(`\b(proven|experienced|seasoned|successful)\b`)
)

// titleBand maps a title keyword to a fixed band. When notFollowedBy is set,
// a match only counts if the rest of its line does not contain that pattern.
type titleBand struct {
	pattern       *regexp.Regexp
	notFollowedBy *regexp.Regexp
	band          string
}

func (r titleBand) matches(text string) bool {
	if r.notFollowedBy == nil {
		return r.pattern.MatchString(text)
	}
	for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			rest = rest[:i]
		}
		if !r.notFollowedBy.MatchString(rest) {
			return true
		}
	}
	return false
}

// evaluated in order, first match wins
var titleBands = []titleBand{
	//entry level
	{pattern: regexp.MustCompile(`\b(intern|internship)\b`), band: "<1"},
	{pattern: regexp.MustCompile(`\bstudent\b`), band: "<1"},
	{pattern: regexp.MustCompile(`\bentry.?level\b`), band: "<1"},
	{pattern: regexp.MustCompile(`\brecent\s+grad`), band: "<1"},

	//qualified titles go before the bare ones they contain
	{pattern: regexp.MustCompile(`\bsenior\s+(account\s+executive|ae|sdr)\b`), band: "4+"},
	{pattern: regexp.MustCompile(`\b(smb|enterprise)\s+account\s+executive\b`), band: "3-5"},

	//junior
	{pattern: regexp.MustCompile(`\b(sdr|bdr)\b`), notFollowedBy: regexp.MustCompile(`manager|lead|senior`), band: "1-2"},
	{pattern: regexp.MustCompile(`\bjunior\b`), band: "1-2"},
	{pattern: regexp.MustCompile(`\bassociate\b`), notFollowedBy: regexp.MustCompile(`director`), band: "1-2"},

	//mid-level
	{pattern: regexp.MustCompile(`\baccount\s+executive\b`), notFollowedBy: regexp.MustCompile(`senior`), band: "2-4"},
	{pattern: regexp.MustCompile(`\b(ae)\b`), notFollowedBy: regexp.MustCompile(`senior`), band: "2-4"},
	{pattern: regexp.MustCompile(`\bmid.?market\b`), band: "2-4"},

	//leadership
	{pattern: regexp.MustCompile(`\bteam\s+lead\b`), band: "3+"},
	{pattern: regexp.MustCompile(`\bsales\s+manager\b`), band: "4+"},
}

// EstimateExperience guesses a years-of-experience band from a headline.
// Rules run in priority order and the first hit wins:
// explicit years, graduation year, title keywords, tenure, generic seniority.
// An empty string means unknown. now only matters for year arithmetic.
func EstimateExperience(headline string, now time.Time) string {
	if strings.TrimSpace(headline) == "" {
		return ""
	}
	text := strings.ToLower(headline)
	currentYear := now.Year()

	if band, ok := explicitYears(text); ok {
		return band
	}
	if band, ok := sinceGraduation(text, currentYear); ok {
		return band
	}
	for _, r := range titleBands {
		if r.matches(text) {
			return r.band
		}
	}
	if band, ok := tenure(text, currentYear); ok {
		return band
	}
	if salesRoleRegex.MatchString(text) && provenRegex.MatchString(text) {
		return "3+"
	}
	return ""
}

func explicitYears(text string) (string, bool) {
	for _, re := range explicitYearsRegexes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) == 3 && m[2] != "" {
			return m[1] + "-" + m[2], true
		}
		if strings.Contains(m[0], "+") {
			return m[1] + "+", true
		}
		return m[1], true
	}
	return "", false
}

func sinceGraduation(text string, currentYear int) (string, bool) {
	for _, re := range gradYearRegexes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if len(m[1]) == 2 {
			year += 2000
		}
		if year < minGradYear || year > currentYear {
			continue
		}
		return yearsSince(year, currentYear), true
	}
	return "", false
}

func tenure(text string, currentYear int) (string, bool) {
	if m := yearsAtRegex.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := sinceRegex.FindStringSubmatch(text); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			return yearsSince(year, currentYear), true
		}
	}
	return "", false
}

func yearsSince(year, currentYear int) string {
	n := currentYear - year
	if n <= 0 {
		return "<1"
	}
	return strconv.Itoa(n)
}
