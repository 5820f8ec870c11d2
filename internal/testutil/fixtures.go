// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs/internal/fileutil"
)

// NewSimpleSwaggerDocument creates a minimal, valid Swagger 2.0 document tree.
// Each call returns a fresh tree the caller may mutate.
func NewSimpleSwaggerDocument() map[string]any {
	return map[string]any{
		"swagger":  "2.0",
		"info":     map[string]any{"title": "Test API", "version": "1.0.0"},
		"host":     "api.example.com",
		"basePath": "/v1",
		"paths":    map[string]any{},
	}
}

// NewDetailedSwaggerDocument adds a Pet definition (without a title) and a
// /pets operation that references it to the simple document.
func NewDetailedSwaggerDocument() map[string]any {
	doc := NewSimpleSwaggerDocument()
	doc["definitions"] = map[string]any{
		"Pet": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":   map[string]any{"type": "integer"},
				"name": map[string]any{"type": "string"},
			},
		},
	}
	doc["paths"] = map[string]any{
		"/pets": map[string]any{
			"get": map[string]any{
				"operationId": "listPets",
				"responses": map[string]any{
					"200": map[string]any{
						"description": "OK",
						"schema":      map[string]any{"$ref": "#/definitions/Pet"},
					},
				},
			},
		},
	}
	return doc
}

// WriteFiles writes each name/content pair below dir, creating subdirectories
// as needed. Names use forward slashes.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), fileutil.OwnerReadWrite); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
