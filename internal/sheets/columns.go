package sheets

import (
	"strconv"
	"strings"
)

// ColumnLetter converts a 1-based column index to its A1 letters (1 -> A, 27 -> AA).
func ColumnLetter(col int) string {
	if col < 1 {
		return ""
	}
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// ColumnIndex finds a header by name (case and surrounding space ignored)
// and returns its 1-based index, or fallback when absent.
func ColumnIndex(header []string, name string, fallback int) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i + 1
		}
	}
	return fallback
}

// ColumnContaining returns the first header holding every part, or fallback.
func ColumnContaining(header []string, fallback int, parts ...string) int {
	for i, h := range header {
		h = strings.ToLower(h)
		found := true
		for _, p := range parts {
			if !strings.Contains(h, p) {
				found = false
				break
			}
		}
		if found {
			return i + 1
		}
	}
	return fallback
}

// StartRow reads the first row number out of an A1 range like 'tab'!A12:K13.
func StartRow(rng string) int {
	if i := strings.LastIndexByte(rng, '!'); i >= 0 {
		rng = rng[i+1:]
	}
	start := strings.IndexFunc(rng, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0
	}
	end := start
	for end < len(rng) && rng[end] >= '0' && rng[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(rng[start:end])
	if err != nil {
		return 0
	}
	return n
}
