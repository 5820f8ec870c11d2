package builder

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/internal/maputil"
	"github.com/erraggy/oasdocs/loader"
	"github.com/erraggy/oasdocs/oaserrors"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"swagger": "2.0",
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{}}},
			},
			"/owners": map[string]any{"post": map[string]any{}},
		},
		"definitions": map[string]any{"Pet": map[string]any{"type": "object"}},
	}
}

func TestUpdatePathInvalidFragment(t *testing.T) {
	doc := sampleDoc()
	before := maputil.DeepCopy(doc)

	result := newTestBuilder().UpdatePath("badpath: [", "badpath", doc)

	var yamlErr *oaserrors.YAMLError
	require.True(t, errors.As(result.Err, &yamlErr))
	if diff := cmp.Diff(before, result.Specs); diff != "" {
		t.Errorf("document changed (-before +after):\n%s", diff)
	}
	assert.Empty(t, cmp.Diff(before, doc))

	data, err := json.Marshal(result)
	require.NoError(t, err)
	var envelope map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Contains(t, envelope["error"], "yamlError")
	assert.NotNil(t, envelope["specs"])
}

func TestUpdatePathReplacesOneEntry(t *testing.T) {
	doc := sampleDoc()
	before := maputil.DeepCopy(doc).(map[string]any)

	result := newTestBuilder().UpdatePath("foo:\n  get: {}", "foo", doc)
	require.NoError(t, result.Err)

	paths := doc["paths"].(map[string]any)
	assert.Equal(t, map[string]any{"get": map[string]any{}}, paths["foo"])

	// everything else is untouched
	delete(paths, "foo")
	if diff := cmp.Diff(before, doc); diff != "" {
		t.Errorf("unrelated keys changed (-before +after):\n%s", diff)
	}
}

func TestUpdatePathOverwritesExisting(t *testing.T) {
	doc := sampleDoc()
	owners := doc["paths"].(map[string]any)["/owners"]

	result := newTestBuilder().UpdatePath("/pets:\n  delete:\n    responses:\n      204: {}\n", "/pets", doc)
	require.NoError(t, result.Err)

	paths := result.Specs["paths"].(map[string]any)
	assert.Equal(t, map[string]any{
		"delete": map[string]any{"responses": map[string]any{"204": map[string]any{}}},
	}, paths["/pets"])
	assert.Equal(t, owners, paths["/owners"])
}

func TestUpdatePathMissingKey(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
	}{
		{name: "other key", fragment: "bar:\n  get: {}"},
		{name: "scalar fragment", fragment: "just text"},
		{name: "empty fragment", fragment: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDoc()
			before := maputil.DeepCopy(doc)

			result := newTestBuilder().UpdatePath(tt.fragment, "foo", doc)

			var notFound *oaserrors.PathNotFoundError
			require.True(t, errors.As(result.Err, &notFound))
			assert.Equal(t, "foo", notFound.PathName)
			assert.Empty(t, cmp.Diff(before, doc))
		})
	}
}

func TestUpdatePathDocumentShape(t *testing.T) {
	t.Run("creates paths", func(t *testing.T) {
		doc := map[string]any{"swagger": "2.0"}
		result := newTestBuilder().UpdatePath("/pets: {}", "/pets", doc)
		require.NoError(t, result.Err)
		assert.Equal(t, map[string]any{"/pets": map[string]any{}}, doc["paths"])
	})

	t.Run("nil document", func(t *testing.T) {
		result := newTestBuilder().UpdatePath("/pets: {}", "/pets", nil)
		assert.ErrorIs(t, result.Err, oaserrors.ErrDocument)
		assert.Nil(t, result.Specs)
	})

	t.Run("paths not a mapping", func(t *testing.T) {
		doc := map[string]any{"paths": []any{"/pets"}}
		result := newTestBuilder().UpdatePath("/pets: {}", "/pets", doc)

		var docErr *oaserrors.DocumentError
		require.True(t, errors.As(result.Err, &docErr))
		assert.Equal(t, "paths", docErr.Field)
		assert.Equal(t, []any{"/pets"}, doc["paths"])
	})
}

func TestUpdatePathMemoizesFragments(t *testing.T) {
	var calls int
	l := loader.New(loader.WithParseFunc(func(text string) (any, error) {
		calls++
		return loader.ParseYAML(text)
	}))
	b := newTestBuilder(WithLoader(l))

	first := sampleDoc()
	second := sampleDoc()
	require.NoError(t, b.UpdatePath("foo:\n  get: {}", "foo", first).Err)
	require.NoError(t, b.UpdatePath("foo:\n  get: {}", "foo", second).Err)
	assert.Equal(t, 1, calls)

	// each document gets its own copy of the fragment
	first["paths"].(map[string]any)["foo"].(map[string]any)["put"] = map[string]any{}
	assert.NotContains(t, second["paths"].(map[string]any)["foo"], "put")
}

func TestGetPath(t *testing.T) {
	doc := map[string]any{"paths": map[string]any{"a": 1, "b": 2, "c": 3}}
	before := maputil.DeepCopy(doc)

	assert.Equal(t, map[string]any{"a": 1, "c": 3}, GetPath(doc, "a", "c"))
	assert.Equal(t, map[string]any{}, GetPath(doc, "z"))
	assert.Equal(t, map[string]any{}, GetPath(doc))
	assert.Empty(t, cmp.Diff(before, doc))

	t.Run("no paths table", func(t *testing.T) {
		assert.Equal(t, map[string]any{}, GetPath(nil, "a"))
		assert.Equal(t, map[string]any{}, GetPath(map[string]any{"paths": "x"}, "a"))
	})
}
