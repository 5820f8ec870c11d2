package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/internal/testutil"
	"github.com/erraggy/oasdocs/oaserrors"
)

func petDoc() map[string]any {
	return map[string]any{
		"swagger": "2.0",
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{
							"schema": map[string]any{"$ref": "#/definitions/Pet"},
						},
					},
				},
			},
		},
		"definitions": map[string]any{
			"Pet": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tag": map[string]any{"$ref": "#/definitions/Tag"},
				},
			},
			"Tag": map[string]any{"type": "string"},
		},
	}
}

func schemaAt(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	paths := doc["paths"].(map[string]any)
	get := paths["/pets"].(map[string]any)["get"].(map[string]any)
	resp := get["responses"].(map[string]any)["200"].(map[string]any)
	return resp["schema"].(map[string]any)
}

func TestResolveLocalRefs(t *testing.T) {
	doc, err := New().Resolve(context.Background(), petDoc())
	require.NoError(t, err)

	schema := schemaAt(t, doc)
	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$ref")

	tag := schema["properties"].(map[string]any)["tag"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string"}, tag)
}

func TestResolveCopiesTargets(t *testing.T) {
	doc := map[string]any{
		"a":           map[string]any{"$ref": "#/definitions/X"},
		"b":           map[string]any{"$ref": "#/definitions/X"},
		"definitions": map[string]any{"X": map[string]any{"type": "string"}},
	}
	resolved, err := New().Resolve(context.Background(), doc)
	require.NoError(t, err)

	resolved["a"].(map[string]any)["type"] = "integer"
	assert.Equal(t, "string", resolved["b"].(map[string]any)["type"])
	assert.Equal(t, "string", resolved["definitions"].(map[string]any)["X"].(map[string]any)["type"])
}

func TestResolvePointerForms(t *testing.T) {
	doc := map[string]any{
		"tags":  []any{map[string]any{"name": "first"}, map[string]any{"name": "second"}},
		"paths": map[string]any{"/pets": map[string]any{"summary": "pets"}},
		"byTag": map[string]any{"$ref": "#/tags/1"},
		"byKey": map[string]any{"$ref": "#/paths/~1pets"},
		"title": map[string]any{"$ref": "#/paths/~1pets/summary"},
	}
	resolved, err := New().Resolve(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "second"}, resolved["byTag"])
	assert.Equal(t, map[string]any{"summary": "pets"}, resolved["byKey"])
	assert.Equal(t, "pets", resolved["title"])
}

func TestResolveCircularRefsLeftInPlace(t *testing.T) {
	doc := map[string]any{
		"definitions": map[string]any{
			"Node": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"next": map[string]any{"$ref": "#/definitions/Node"},
				},
			},
		},
		"root": map[string]any{"$ref": "#"},
	}
	resolved, err := New().Resolve(context.Background(), doc)
	require.NoError(t, err)

	next := resolved["definitions"].(map[string]any)["Node"].(map[string]any)["properties"].(map[string]any)["next"].(map[string]any)
	assert.Equal(t, "object", next["type"])
	inner := next["properties"].(map[string]any)["next"].(map[string]any)
	assert.Equal(t, "#/definitions/Node", inner["$ref"])
	assert.Equal(t, map[string]any{"$ref": "#"}, resolved["root"])
}

func TestResolveMissingRef(t *testing.T) {
	doc := map[string]any{
		"schema": map[string]any{"$ref": "#/definitions/Missing"},
	}
	_, err := New().Resolve(context.Background(), doc)
	require.Error(t, err)

	var refErr *oaserrors.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "#/definitions/Missing", refErr.Ref)
	assert.Equal(t, "local", refErr.RefType)
	assert.True(t, errors.Is(err, oaserrors.ErrReference))

	data, ok := refErr.Data().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#/definitions/Missing", data["ref"])
	assert.Contains(t, data["message"], "missing key: Missing")
}

func TestResolveNilDocument(t *testing.T) {
	_, err := New().Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, oaserrors.ErrReference)
}

func TestResolveFileRefs(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"pet.yaml":          "Pet:\n  $ref: '#/Name'\nName:\n  type: string\n",
		"common/error.json": `{"Error": {"$ref": "codes.json#/Code"}}`,
		"common/codes.json": `{"Code": {"type": "integer"}}`,
	})

	doc := map[string]any{
		"pet":   map[string]any{"$ref": "pet.yaml#/Pet"},
		"error": map[string]any{"$ref": "common/error.json#/Error"},
	}

	resolved, err := New(WithBaseDir(dir)).Resolve(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "string"}, resolved["pet"])
	assert.Equal(t, map[string]any{"type": "integer"}, resolved["error"])
}

func TestResolveFileRefErrors(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"list.yaml": "- a\n- b\n"})

	tests := []struct {
		name      string
		opts      []Option
		ref       string
		traversal bool
		limit     bool
	}{
		{name: "no base directory", ref: "pet.yaml#/Pet"},
		{name: "parent traversal", opts: []Option{WithBaseDir(dir)}, ref: "../secret.yaml#/X", traversal: true},
		{name: "absolute outside base", opts: []Option{WithBaseDir(dir)}, ref: filepath.Join(filepath.Dir(dir), "x.yaml") + "#/X", traversal: true},
		{name: "missing file", opts: []Option{WithBaseDir(dir)}, ref: "missing.yaml#/X"},
		{name: "non-mapping document", opts: []Option{WithBaseDir(dir)}, ref: "list.yaml#/0"},
		{name: "file too large", opts: []Option{WithBaseDir(dir), WithMaxFileSize(2)}, ref: "list.yaml#/0", limit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]any{"x": map[string]any{"$ref": tt.ref}}
			_, err := New(tt.opts...).Resolve(context.Background(), doc)
			require.Error(t, err)

			if tt.limit {
				assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
				return
			}
			assert.ErrorIs(t, err, oaserrors.ErrReference)
			assert.Equal(t, tt.traversal, errors.Is(err, oaserrors.ErrPathTraversal))
		})
	}
}

func TestResolveHTTPRefs(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/specs/pet.yaml":
			userAgent = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("Pet:\n  $ref: 'shared.yaml#/Id'\n"))
		case "/specs/shared.yaml":
			_, _ = w.Write([]byte("Id:\n  type: integer\n  format: int64\n"))
		case "/specs/gone.yaml":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("no such document"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	t.Run("resolves relative to the fetched document", func(t *testing.T) {
		doc := map[string]any{"pet": map[string]any{"$ref": srv.URL + "/specs/pet.yaml#/Pet"}}
		r := New(WithHTTPClient(srv.Client()), WithUserAgent("oasdocs-test"))
		resolved, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "integer", "format": "int64"}, resolved["pet"])
		assert.Equal(t, "oasdocs-test", userAgent)
	})

	t.Run("disabled without a client", func(t *testing.T) {
		doc := map[string]any{"pet": map[string]any{"$ref": srv.URL + "/specs/pet.yaml#/Pet"}}
		_, err := New().Resolve(context.Background(), doc)
		var refErr *oaserrors.ReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "http", refErr.RefType)
	})

	t.Run("fetch failure carries the response body", func(t *testing.T) {
		doc := map[string]any{"gone": map[string]any{"$ref": srv.URL + "/specs/gone.yaml#/X"}}
		_, err := New(WithHTTPClient(srv.Client())).Resolve(context.Background(), doc)
		require.Error(t, err)

		var fetchErr *oaserrors.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)

		var carrier oaserrors.DataCarrier
		require.True(t, errors.As(err, &carrier))
		assert.Equal(t, "no such document", carrier.Data())
	})
}

func TestResolveDepthLimit(t *testing.T) {
	doc := map[string]any{}
	current := doc
	for range 10 {
		next := map[string]any{}
		current["child"] = next
		current = next
	}

	_, err := New(WithMaxDepth(5)).Resolve(context.Background(), doc)
	var limitErr *oaserrors.ResourceLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "ref_depth", limitErr.ResourceType)
	assert.Equal(t, int64(5), limitErr.Limit)

	_, err = New().Resolve(context.Background(), doc)
	assert.NoError(t, err)
}

// fanOutDocument returns definitions D0..Dn where each Di references D(i-1)
// twice, so the fully expanded Dn holds 2^n copies of D0.
func fanOutDocument(n int) map[string]any {
	defs := map[string]any{"D0": map[string]any{"type": "string"}}
	for i := 1; i <= n; i++ {
		prev := fmt.Sprintf("#/definitions/D%d", i-1)
		defs[fmt.Sprintf("D%d", i)] = map[string]any{
			"properties": map[string]any{
				"a": map[string]any{"$ref": prev},
				"b": map[string]any{"$ref": prev},
			},
		}
	}
	return map[string]any{"definitions": defs}
}

func TestResolveNodeLimit(t *testing.T) {
	t.Run("small fan-out resolves", func(t *testing.T) {
		doc, err := New(WithMaxNodes(1000)).Resolve(context.Background(), fanOutDocument(3))
		require.NoError(t, err)
		d3 := doc["definitions"].(map[string]any)["D3"].(map[string]any)
		leaf := d3["properties"].(map[string]any)["a"].(map[string]any)["properties"].(map[string]any)["b"].(map[string]any)["properties"].(map[string]any)["a"]
		assert.Equal(t, map[string]any{"type": "string"}, leaf)
	})

	t.Run("configured limit", func(t *testing.T) {
		_, err := New(WithMaxNodes(1000)).Resolve(context.Background(), fanOutDocument(20))
		var limitErr *oaserrors.ResourceLimitError
		require.True(t, errors.As(err, &limitErr))
		assert.Equal(t, "expanded_nodes", limitErr.ResourceType)
		assert.Equal(t, int64(1000), limitErr.Limit)
	})

	t.Run("default limit stops exponential expansion", func(t *testing.T) {
		// 28 levels stay within MaxRefDepth, so only the node budget can stop it.
		_, err := New().Resolve(context.Background(), fanOutDocument(28))
		var limitErr *oaserrors.ResourceLimitError
		require.True(t, errors.As(err, &limitErr))
		assert.Equal(t, "expanded_nodes", limitErr.ResourceType)
	})

	t.Run("non-positive values keep the default", func(t *testing.T) {
		assert.Equal(t, MaxExpandedNodes, New(WithMaxNodes(0)).maxNodes)
	})
}

func TestResolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Resolve(ctx, petDoc())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolvePointer(t *testing.T) {
	doc := map[string]any{
		"a/b": map[string]any{"c~d": 1},
		"arr": []any{"x"},
		"str": "s",
	}
	tests := []struct {
		pointer string
		want    any
		wantErr bool
	}{
		{pointer: "", want: doc},
		{pointer: "/a~1b/c~0d", want: 1},
		{pointer: "/arr/0", want: "x"},
		{pointer: "/arr/1", wantErr: true},
		{pointer: "/arr/x", wantErr: true},
		{pointer: "/str/x", wantErr: true},
		{pointer: "noslash", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.pointer, func(t *testing.T) {
			got, err := resolvePointer(doc, tt.pointer)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
