package filter

import (
	"regexp"
	"strconv"
	"strings"

	"go-lead-sourcer/internal/models"
)

// Rule tables. Every pattern runs against lower-cased text, top to bottom.
var (
	// founder/owner titles override every exclusion below
	allowedTitles = compileAll(
		`\bfounder\b`,
		`\bowner\b`,
		`\bco-founder\b`,
		`\bcofounder\b`,
	)

	excludedTitles = compileAll(
		`\bvp\b`,
		`\bvice president\b`,
		`\bdirector\b`,
		`\bhead of\b`,
		`\bchief\b`,
		`\bceo\b`,
		`\bcro\b`,
		`\bcoo\b`,
		`\bcfo\b`,
		`\bcmo\b`,
		`\bcto\b`,
		`\bsvp\b`,
		`\bevp\b`,
		`\bsenior vice president\b`,
		`\bexecutive vice president\b`,
		`\bgeneral manager\b`,
		`\bgm\b`,
		`\bpresident\b`,
		`\bpartner\b`,
		`\bprincipal\b`,
		`\bmanaging director\b`,
		`\benterprise\b`,
	)

	// people already working as SDR/BDR
	existingSDRTitles = compileAll(
		`\bsdr\b`,
		`\bbdr\b`,
		`\bsales development representative\b`,
		`\bbusiness development representative\b`,
		`\bsales development\b`,
		`\bbusiness development rep\b`,
		`\blead development representative\b`,
		`\bldr\b`,
		`\bmarket development representative\b`,
		`\bmdr\b`,
	)

	utahLocations = compileAll(
		`\butah\b`,
		`\bsalt lake city\b`,
		`\bslc\b`,
		`\bprovo\b`,
		`\bogden\b`,
		`\borem\b`,
		`\blehi\b`,
		`\bsandy\b`,
		`\bdraper\b`,
		`\bst\.?\s*george\b`,
		`\blogan\b`,
		`\bpark city\b`,
		`\bsilicon slopes\b`,
		`,\s*ut\b`,
		`\but\s*,`,
		`\bbountiful\b`,
		`\bmurray\b`,
		`\blayton\b`,
		`\bclearfield\b`,
		`\bamerican fork\b`,
		`\bpleasant grove\b`,
		`\bspanish fork\b`,
		`\bspringville\b`,
		`\bheriman\b`,
		`\bherriman\b`,
		`\briverton\b`,
		`\btooele\b`,
	)

	utahColleges = compileAll(
		`\bbyu\b`,
		`\bbrigham young\b`,
		`\butah state\b`,
		`\buniversity of utah\b`,
		`\bu of u\b`,
		`\bweber state\b`,
		`\buvu\b`,
		`\butah valley\b`,
		`\bsouthern utah\b`,
		`\bdixie state\b`,
		`\butah tech\b`,
		`\bwestminster\b.*\butah\b`,
		`\bsnow college\b`,
		`\bslcc\b`,
		`\bsalt lake community\b`,
		`\bensign college\b`,
		`\butah state university\b`,
	)

	aeIndicators = compileAll(
		`\baccount executive\b`,
		`\bae\b`,
		`\bclosing\b`,
		`\bfull.?cycle\b`,
		`\bmid.?market\b`,
		`\benterprise\b`,
		`\bsmb\b`,
		`\bquota\b`,
		`(?:^|[^\w$])\$\d+[mk]\b`, // revenue figures like $500k, $1m
		`\bclosed\b`,
		`\bsaas\b.*\b(2|3|4)\+?\s*years?\b`,
		`\b(2|3|4)\+?\s*years?\b.*\bsaas\b`,
		`\bsenior\s*(account|sales)\b`,
	)

	sdrIndicators = compileAll(
		`\bsdr\b`,
		`\bbdr\b`,
		`\bsales development\b`,
		`\bbusiness development representative\b`,
		`\boutbound\b`,
		`\bcold calling\b`,
		`\blead generation\b`,
		`\bprospecting\b`,
		`\bstudent athlete\b`,
		`\bncaa\b`,
		`\bdoor.?to.?door\b`,
		`\bd2d\b`,
		`\brecent graduate\b`,
		`\bentry.?level\b`,
		`\bintern\b`,
		`\brestaurant\b`,
		`\bbartender\b`,
		`\bserver\b`,
	)

	yearsRegex = regexp.MustCompile(`(\d+)\+?\s*years?`)
)

// UtahTechCompanies are matched as plain substrings. A hit is also a strong AE signal.
var UtahTechCompanies = []string{
	"qualtrics", "pluralsight", "podium", "lucid", "domo", "entrata",
	"weave", "divvy", "mx", "instructure", "vivint", "healthequity",
	"recursion", "carta", "workfront", "bamboohr", "workstream",
}

// query terms that mark an AE search when there is no headline to score
var aeQueryTerms = []string{"account executive", "ae ", "saas"}

const companyBonus = 2

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

func anyMatch(rules []*regexp.Regexp, text string) bool {
	for _, r := range rules {
		if r.MatchString(text) {
			return true
		}
	}
	return false
}

func countMatches(rules []*regexp.Regexp, text string) int {
	n := 0
	for _, r := range rules {
		if r.MatchString(text) {
			n++
		}
	}
	return n
}

func mentionsCompany(text string) bool {
	for _, company := range UtahTechCompanies {
		if strings.Contains(text, company) {
			return true
		}
	}
	return false
}

// Score counts SDR and AE evidence in a headline
func Score(headline string) (sdr, ae int) {
	text := strings.ToLower(headline)

	ae = countMatches(aeIndicators, text)
	sdr = countMatches(sdrIndicators, text)

	//utah tech experience weighs double, counted once
	if mentionsCompany(text) {
		ae += companyBonus
	}

	//first "N years" mention only
	if m := yearsRegex.FindStringSubmatch(text); m != nil {
		years, err := strconv.Atoi(m[1])
		if err == nil {
			if years >= 2 {
				ae++
			}
			if years >= 4 {
				ae++
			}
		}
	}
	return sdr, ae
}

// DetermineRoleFit labels a candidate SDR, AE or SDR/AE. It never returns RoleUnknown.
//
// AE needs a score of at least 2 to win outright; SDR only needs to lead.
func DetermineRoleFit(headline, sourceQuery string) models.Role {
	if strings.TrimSpace(headline) == "" {
		return RoleFromQuery(sourceQuery)
	}

	sdr, ae := Score(headline)
	switch {
	case ae > sdr && ae >= 2:
		return models.RoleAE
	case sdr > ae:
		return models.RoleSDR
	case ae > 0 && sdr > 0:
		return models.RoleEither
	case ae > 0:
		return models.RoleAE
	default:
		return models.RoleSDR
	}
}

// RoleFromQuery infers the role a query was written for: AE if it names
// account executive, "ae " or saas, SDR otherwise.
func RoleFromQuery(query string) models.Role {
	q := strings.ToLower(query)
	for _, term := range aeQueryTerms {
		if strings.Contains(q, term) {
			return models.RoleAE
		}
	}
	return models.RoleSDR
}
