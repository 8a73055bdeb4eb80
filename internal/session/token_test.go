package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"raw token", "abc123def456", "abc123def456"},
		{"whitespace", "  abc123def456\n", "abc123def456"},
		{"bearer header value", "Bearer abc123def456", "abc123def456"},
		{"token prefix", "Token abc123def456", "abc123def456"},
		{"full header line", "Authorization: Token abc123def456", "abc123def456"},
		{"bearer mixed case", "bEaReR abc123def456", "abc123def456"},
		{"quoted", `"abc123def456"`, "abc123def456"},
		{"json token key", `{"token": "abc123def456"}`, "abc123def456"},
		{"json access_token key", `{"access_token": "abc123def456"}`, "abc123def456"},
		{"json camel key", `{"accessToken": "abc123def456", "user": "x"}`, "abc123def456"},
		{"json with bearer value", `{"token": "Bearer abc123def456"}`, "abc123def456"},
		{"empty", "", ""},
		{"only whitespace", "   \n\t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeToken(tt.in))
		})
	}
}
