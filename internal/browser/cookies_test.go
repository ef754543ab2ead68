package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies-google.json")
	data := `[
		{"name":"CONSENT","value":"YES+","domain":".google.com","path":"/","expires":1893456000,"secure":true,"sameSite":"Lax"},
		{"name":"NID","value":"abc","domain":".google.com","httpOnly":true,"sameSite":"no_restriction"},
		{"name":"","value":"dropped","domain":".google.com"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cookies, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	assert.Equal(t, "CONSENT", cookies[0].Name)
	assert.Equal(t, ".google.com", *cookies[0].Domain)
	assert.Equal(t, 1893456000.0, *cookies[0].Expires)
	assert.True(t, *cookies[0].Secure)
	assert.Equal(t, playwright.SameSiteAttributeLax, cookies[0].SameSite)

	assert.Equal(t, "/", *cookies[1].Path)
	assert.True(t, *cookies[1].HttpOnly)
	assert.Nil(t, cookies[1].Expires)
	assert.Equal(t, playwright.SameSiteAttributeNone, cookies[1].SameSite)
}

func TestLoadCookiesMissingFile(t *testing.T) {
	cookies, err := LoadCookies(filepath.Join(t.TempDir(), "nope.json"))
	assert.NoError(t, err)
	assert.Empty(t, cookies)

	cookies, err = LoadCookies("")
	assert.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestLoadCookiesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := LoadCookies(path)
	assert.Error(t, err)
}
