package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid simple email", input: "user@example.com", want: true},
		{name: "valid with plus", input: "user+tag@example.com", want: true},
		{name: "valid with subdomain", input: "user@sub.example.com", want: true},
		{name: "missing at sign", input: "userexample.com", want: false},
		{name: "missing local part", input: "@example.com", want: false},
		{name: "missing TLD", input: "user@example", want: false},
		{name: "empty string", input: "", want: false},
		{name: "spaces", input: "user @example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.input))
		})
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, IsAbsoluteURL("https://example.com/terms"))
	assert.False(t, IsAbsoluteURL("/terms"))
	assert.False(t, IsAbsoluteURL("example.com"))
	assert.False(t, IsAbsoluteURL("http://[::1"))
}
