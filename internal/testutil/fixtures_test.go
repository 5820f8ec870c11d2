package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestNewSimpleSwaggerDocument(t *testing.T) {
	doc := NewSimpleSwaggerDocument()
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Equal(t, map[string]any{"title": "Test API", "version": "1.0.0"}, doc["info"])
	assert.Empty(t, doc["paths"])

	// Fresh tree per call.
	doc["info"].(map[string]any)["title"] = "changed"
	assert.Equal(t, "Test API", NewSimpleSwaggerDocument()["info"].(map[string]any)["title"])
}

func TestNewDetailedSwaggerDocument(t *testing.T) {
	doc := NewDetailedSwaggerDocument()
	pet := doc["definitions"].(map[string]any)["Pet"].(map[string]any)
	assert.NotContains(t, pet, "title")

	get := doc["paths"].(map[string]any)["/pets"].(map[string]any)["get"].(map[string]any)
	assert.Equal(t, "listPets", get["operationId"])
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	WriteFiles(t, dir, map[string]string{
		"a.yaml":          "a: 1\n",
		"common/b/c.json": `{"c": 3}`,
	})

	data, err := os.ReadFile(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "common", "b", "c.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"c": 3}`, string(data))
}

func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, NewSimpleSwaggerDocument())
	assert.Equal(t, ".yaml", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "2.0", got["swagger"])
}

func TestWriteTempJSON(t *testing.T) {
	path := WriteTempJSON(t, NewDetailedSwaggerDocument())
	assert.Equal(t, ".json", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Contains(t, got, "definitions")
}
