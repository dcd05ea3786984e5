package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"example.com", "https://example.com"},
		{"  example.com/path  ", "https://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"about:blank", "about:blank"},
		{"plain query", "plain query"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestLooksLikeURL(t *testing.T) {
	assert.True(t, looksLikeURL("github.com"))
	assert.True(t, looksLikeURL("https://x"))
	assert.False(t, looksLikeURL("golang tutorials"))
	assert.False(t, looksLikeURL(""))
}

func TestParseAbsolute(t *testing.T) {
	u, err := ParseAbsolute("https://a.test/path?q=1")
	require.NoError(t, err)
	assert.Equal(t, "a.test", u.Hostname())

	for _, raw := range []string{"/relative", "a.test", "mailto:someone@a.test", "http://[::1"} {
		_, err := ParseAbsolute(raw)
		assert.Error(t, err, raw)
	}
}

func TestHostnameAndFavicon(t *testing.T) {
	assert.Equal(t, "a.test", Hostname("https://a.test:8443/x"))
	assert.Equal(t, "https://icons.test/?domain=a.test", FaviconURL("https://icons.test/?domain=", "a.test"))
}
