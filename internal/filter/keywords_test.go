package filter

import (
	"testing"

	"go-lead-sourcer/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsTooSenior(t *testing.T) {
	tests := []struct {
		headline string
		expected bool
	}{
		{"Director of Sales", true},
		{"VP Sales at Domo", true},
		{"Principal Consultant", true},
		{"Enterprise Account Executive", true},
		{"Director and Founder", false},
		{"VP Sales | Co-Founder", false},
		{"Owner, Head of Growth", false},
		{"Account Executive", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.headline, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTooSenior(tt.headline))
		})
	}
}

func TestIsExistingSDR(t *testing.T) {
	assert.True(t, IsExistingSDR("SDR at Podium", ""))
	assert.True(t, IsExistingSDR("Student", "Former BDR intern at Weave"))
	assert.True(t, IsExistingSDR("Sales Development Representative", ""))
	assert.False(t, IsExistingSDR("Founder, former BDR", ""))
	assert.False(t, IsExistingSDR("", "SDR at Podium"))
	assert.False(t, IsExistingSDR("Account Executive", "closing deals"))
}

func TestIsAffiliated(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		snippet  string
		expected bool
	}{
		{"company", "AE at Qualtrics", "", true},
		{"college", "Student at BYU", "", true},
		{"city in snippet", "Sales", "Lehi, Utah, United States", true},
		{"state abbreviation", "Sales rep, UT", "", true},
		{"st george", "Server in St. George", "", true},
		{"elsewhere", "Sales in Denver, Colorado", "Boise State alumni", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAffiliated(tt.headline, tt.snippet))
		})
	}
}

func TestScreen(t *testing.T) {
	tests := []struct {
		name      string
		candidate models.Candidate
		queryRole models.Role
		expected  Verdict
	}{
		{
			name:      "executive",
			candidate: models.Candidate{Headline: "VP Sales", Snippet: "Salt Lake City, Utah"},
			queryRole: models.RoleAE,
			expected:  RejectedSenior,
		},
		{
			name:      "incumbent on sdr search",
			candidate: models.Candidate{Headline: "BDR at Weave"},
			queryRole: models.RoleSDR,
			expected:  RejectedExistingSDR,
		},
		{
			name:      "incumbent on ae search",
			candidate: models.Candidate{Headline: "BDR at Weave"},
			queryRole: models.RoleAE,
			expected:  Accepted,
		},
		{
			name:      "no utah signal",
			candidate: models.Candidate{Headline: "Student at Boise State"},
			queryRole: models.RoleSDR,
			expected:  RejectedUnaffiliated,
		},
		{
			name:      "fresh utah student",
			candidate: models.Candidate{Headline: "Student at BYU"},
			queryRole: models.RoleSDR,
			expected:  Accepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Screen(tt.candidate, tt.queryRole))
		})
	}
}
