package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"plain", "2024-03", "%2024-03%"},
		{"percent", "2024%", `%2024\%%`},
		{"underscore", "T10_30", `%T10\_30%`},
		{"backslash", `a\b`, `%a\\b%`},
		{"empty", "", "%%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.value))
		})
	}
}
