package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_Message(t *testing.T) {
	tests := []struct {
		name string
		expr string
		body string
		want string
	}{
		{
			name: "standard envelope",
			body: `{"error":{"message":"Invalid credentials","code":"AUTH_001"}}`,
			want: "Invalid credentials",
		},
		{
			name: "whitespace trimmed",
			body: `{"error":{"message":"  Account locked  "}}`,
			want: "Account locked",
		},
		{
			name: "custom path",
			expr: "detail",
			body: `{"detail":"Not found"}`,
			want: "Not found",
		},
		{
			name: "path matches nothing",
			body: `{"message":"top level only"}`,
			want: "",
		},
		{
			name: "match is not a string",
			body: `{"error":{"message":{"nested":"deeper"}}}`,
			want: "",
		},
		{
			name: "match is empty string",
			body: `{"error":{"message":""}}`,
			want: "",
		},
		{
			name: "not json",
			body: `<html>502 Bad Gateway</html>`,
			want: "",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(tt.expr)
			assert.Equal(t, tt.want, e.Message([]byte(tt.body)))
		})
	}
}

func TestNewExtractor_DefaultPath(t *testing.T) {
	for _, expr := range []string{"", "   "} {
		e := NewExtractor(expr)
		got := e.Message([]byte(`{"error":{"message":"hi"}}`))
		assert.Equal(t, "hi", got)
	}
}
