package session

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	bearerRe = regexp.MustCompile(`(?i)\bbearer\s+(\S+)`)
	tokenRe  = regexp.MustCompile(`(?i)\btoken\s+(\S+)`)
)

// NormalizeToken extracts a bare API token from whatever the user pasted.
// Accepted forms: a raw token, an Authorization header line
// ("Bearer <token>" or "Token <token>"), or a JSON blob containing a
// token / access_token / accessToken field. Returns "" when nothing
// usable is found.
func NormalizeToken(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// JSON blob: try the common key names first.
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(s), &obj); err == nil {
			for _, key := range []string{"token", "access_token", "accessToken"} {
				if val, ok := obj[key].(string); ok && strings.TrimSpace(val) != "" {
					s = strings.TrimSpace(val)
					break
				}
			}
		}
	}

	// Header line or anything containing "Bearer <token>".
	if m := bearerRe.FindStringSubmatch(s); m != nil {
		return strings.Trim(m[1], `"'`)
	}

	// "Token <token>" only when it looks like a pasted Authorization header,
	// so a raw token that merely contains the word is left alone.
	if m := tokenRe.FindStringSubmatch(s); m != nil && strings.Contains(strings.ToLower(s), "authorization") {
		return strings.Trim(m[1], `"'`)
	}

	lowered := strings.ToLower(s)
	for _, prefix := range []string{"bearer ", "token "} {
		if strings.HasPrefix(lowered, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}

	return strings.Trim(strings.TrimSpace(s), `"'`)
}
