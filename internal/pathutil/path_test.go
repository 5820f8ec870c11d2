package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateParams(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single parameter", input: "/pets/{petId}", want: []string{"petId"}},
		{name: "multiple parameters", input: "/pets/{petId}/owners/{ownerId}", want: []string{"petId", "ownerId"}},
		{name: "no parameters", input: "/pets/all"},
		{name: "parameter at start", input: "{version}/pets", want: []string{"version"}},
		{name: "duplicates kept", input: "/{id}/{id}", want: []string{"id", "id"}},
		{name: "unclosed brace", input: "/pets/{petId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TemplateParams(tt.input))
		})
	}
}
