package models

import (
	"strings"
)

// Column names of the candidates table, shared by the CSV backup and the sheet.
const (
	ColFullName   = "Full Name"
	ColURL        = "LinkedIn URL"
	ColHeadline   = "Headline"
	ColExperience = "Years of Experience"
	ColRole       = "Role Fit"
	ColNotes      = "Notes"
	ColEmail      = "Email"
	ColPhone      = "Phone"
	ColDateAdded  = "Date Added"
	ColStatus     = "Status"
	ColAIDraft    = "AI Draft"
	ColSource     = "Source Query"
)

// Header is the fixed header row, in column order.
var Header = []string{
	ColFullName, ColURL, ColHeadline, ColExperience, ColRole, ColNotes,
	ColEmail, ColPhone, ColDateAdded, ColStatus, ColAIDraft,
}

// DateLayout is the format of the Date Added stamp.
const DateLayout = "2006-01-02"

// Values returns the candidate as a row ordered like Header.
// An unclassified candidate is written as SDR, the classifier's default.
func (c Candidate) Values() []string {
	role := c.Role
	if role == RoleUnknown {
		role = RoleSDR
	}
	return []string{
		c.FullName,
		c.ProfileURL,
		c.Headline,
		c.Experience,
		role.String(),
		c.Notes,
		c.Email,
		c.Phone,
		c.DateAdded,
		c.Status,
		c.AIDraft,
	}
}

// FromRow builds a candidate from a header-keyed row. Missing columns read as "".
func FromRow(row map[string]string) Candidate {
	get := func(k string) string { return strings.TrimSpace(row[k]) }
	return Candidate{
		FullName:    get(ColFullName),
		ProfileURL:  get(ColURL),
		Headline:    get(ColHeadline),
		Experience:  get(ColExperience),
		Role:        ParseRole(get(ColRole)),
		Notes:       get(ColNotes),
		Email:       get(ColEmail),
		Phone:       get(ColPhone),
		DateAdded:   get(ColDateAdded),
		Status:      get(ColStatus),
		AIDraft:     get(ColAIDraft),
		SourceQuery: get(ColSource),
	}
}

// RowMap zips a header row with a value row. Short rows are padded with "".
func RowMap(header, values []string) map[string]string {
	m := make(map[string]string, len(header))
	for i, h := range header {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		m[strings.TrimSpace(h)] = v
	}
	return m
}
