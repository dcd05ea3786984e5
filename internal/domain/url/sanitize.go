package url

import (
	neturl "net/url"
	"regexp"
	"strconv"
	"strings"
)

// BlankURL is returned by Sanitize for input that must never be loaded.
const BlankURL = "about:blank"

var (
	invalidProtocolRegex = regexp.MustCompile(`(?i)^([^\w]*)(javascript|data|vbscript)`)
	htmlEntitiesRegex    = regexp.MustCompile(`&#(x?[0-9a-fA-F]+);?`)
	htmlCtrlEntityRegex  = regexp.MustCompile(`(?i)&(newline|tab);`)
	ctrlCharactersRegex  = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}\x{2000}-\x{200D}\x{FEFF}]`)
	urlSchemeRegex       = regexp.MustCompile(`^.+(:|&colon;)`)
)

// Sanitize canonicalizes raw or returns BlankURL when it is empty or uses a
// script-capable scheme (javascript:, data:, vbscript:), including obfuscated
// forms hidden behind HTML entities, control characters or percent-encoding.
// Relative URLs are returned as-is.
func Sanitize(raw string) string {
	cleaned := clean(raw)
	if cleaned == "" {
		return BlankURL
	}
	if isRelativeWithoutScheme(cleaned) {
		return cleaned
	}

	// Percent-decoding is only used to detect the scheme; the output keeps its
	// escapes so query values survive untouched.
	if scheme := schemeOf(clean(decodePercent(cleaned))); scheme != "" && invalidProtocolRegex.MatchString(scheme) {
		return BlankURL
	}

	scheme := schemeOf(cleaned)
	if scheme == "" {
		return cleaned
	}

	backSanitized := strings.ReplaceAll(cleaned, `\`, "/")
	if strings.HasPrefix(scheme, "http:") || strings.HasPrefix(scheme, "https:") {
		u, err := neturl.Parse(backSanitized)
		if err != nil || u.Host == "" {
			return BlankURL
		}
		u.Scheme = strings.ToLower(u.Scheme)
		u.Host = strings.ToLower(u.Host)
		return u.String()
	}
	return backSanitized
}

// clean strips entities and control characters until the string is stable,
// since decoding one layer can reveal another.
func clean(s string) string {
	s = strings.TrimSpace(s)
	for i := 0; i < 8; i++ {
		next := decodeHTMLCharacters(s)
		next = htmlCtrlEntityRegex.ReplaceAllString(next, "")
		next = ctrlCharactersRegex.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func schemeOf(s string) string {
	return strings.ToLower(strings.TrimSpace(urlSchemeRegex.FindString(s)))
}

func isRelativeWithoutScheme(s string) bool {
	return strings.HasPrefix(s, ".") || strings.HasPrefix(s, "/")
}

func decodeHTMLCharacters(s string) string {
	return htmlEntitiesRegex.ReplaceAllStringFunc(s, func(match string) string {
		sub := htmlEntitiesRegex.FindStringSubmatch(match)
		digits := sub[1]
		base := 10
		if strings.HasPrefix(digits, "x") {
			digits, base = digits[1:], 16
		}
		code, err := strconv.ParseInt(digits, base, 32)
		if err != nil {
			return match
		}
		return string(rune(code))
	})
}

func decodePercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	out, err := neturl.PathUnescape(s)
	if err != nil {
		return s
	}
	return out
}
