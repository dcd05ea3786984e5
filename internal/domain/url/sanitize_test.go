package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_Blocked(t *testing.T) {
	blocked := []string{
		"",
		"   ",
		"javascript:alert(1)",
		"JaVaScRiPt:alert(1)",
		"  javascript:alert(1)",
		"&#106;&#97;&#118;&#97;&#115;&#99;&#114;&#105;&#112;&#116;&#58;alert(1)",
		"&#x6A;avascript:alert(1)",
		"java\tscript:alert(1)",
		"java&tab;script:alert(1)",
		"%6Aavascript:alert(1)",
		"data:text/html;base64,PHNjcmlwdD4=",
		"vbscript:msgbox(1)",
		"\u0000javascript:alert(1)",
		"https:///nohost",
		"javascript&colon;alert(1)",
	}
	for _, raw := range blocked {
		assert.Equal(t, BlankURL, Sanitize(raw), "%q", raw)
	}
}

func TestSanitize_Allowed(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://a.test/path?q=1", "https://a.test/path?q=1"},
		{"HTTPS://A.TEST/Path", "https://a.test/Path"},
		{"  https://a.test  ", "https://a.test"},
		{"/relative/path", "/relative/path"},
		{"./file", "./file"},
		{"mailto:someone@a.test", "mailto:someone@a.test"},
		{"ftp://files.test/x", "ftp://files.test/x"},
		{"https://a.test/javascript:void", "https://a.test/javascript:void"},
		{"no-scheme-at-all", "no-scheme-at-all"},
		{"https://www.ecosia.org/search?q=a+b%26c", "https://www.ecosia.org/search?q=a+b%26c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}
