package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want Summary
	}{
		{name: "nil", doc: nil, want: Summary{}},
		{
			name: "swagger",
			doc: map[string]any{
				"swagger": "2.0",
				"info":    map[string]any{"title": "Pets", "version": "1.2"},
				"tags":    []any{map[string]any{"name": "pets"}, "bogus"},
				"paths": map[string]any{
					"/pets":      map[string]any{"get": map[string]any{}, "post": map[string]any{}, "parameters": []any{}},
					"/pets/{id}": map[string]any{"get": map[string]any{}, "trace": map[string]any{}},
					"x-internal": map[string]any{"get": map[string]any{}},
				},
				"definitions": map[string]any{"Pet": map[string]any{}, "Error": map[string]any{}},
			},
			want: Summary{
				Version: "2.0", Title: "Pets", APIVersion: "1.2",
				PathCount: 2, OperationCount: 3, DefinitionCount: 2, Tags: []string{"pets"},
			},
		},
		{
			name: "openapi",
			doc: map[string]any{
				"openapi":    "3.0.3",
				"info":       map[string]any{"title": "Pets"},
				"paths":      map[string]any{"/pets": map[string]any{"get": map[string]any{}, "trace": map[string]any{}}},
				"components": map[string]any{"schemas": map[string]any{"Pet": map[string]any{}}},
			},
			want: Summary{Version: "3.0.3", Title: "Pets", PathCount: 1, OperationCount: 2, DefinitionCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.doc))
		})
	}
}
