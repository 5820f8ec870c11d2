package builder

import (
	"fmt"

	"github.com/erraggy/oasdocs/internal/maputil"
	"github.com/erraggy/oasdocs/oaserrors"
)

// UpdatePath parses fragment, a mapping of path names to path items, and stores
// its pathName entry as doc["paths"][pathName]. No other key of doc is touched;
// a missing paths table is created.
//
// The returned Result always carries doc. Its Err is *oaserrors.YAMLError when
// the fragment does not parse, *oaserrors.PathNotFoundError when the fragment has
// no pathName entry and *oaserrors.DocumentError when doc cannot hold paths. In
// each of those cases doc is left unchanged.
func (b *Builder) UpdatePath(fragment, pathName string, doc map[string]any) *Result {
	tree, err := b.loader.Load(fragment)
	if err != nil {
		return &Result{Specs: doc, Err: asYAMLError(err)}
	}

	entries, _ := maputil.Mapping(tree)
	item, found := entries[pathName]
	if !found {
		return &Result{Specs: doc, Err: &oaserrors.PathNotFoundError{PathName: pathName}}
	}

	if doc == nil {
		return &Result{Err: &oaserrors.DocumentError{Field: "paths", Message: "document is nil"}}
	}
	var table map[string]any
	switch raw := doc["paths"].(type) {
	case nil:
		table = make(map[string]any)
		doc["paths"] = table
	case map[string]any:
		table = raw
	default:
		return &Result{Specs: doc, Err: &oaserrors.DocumentError{
			Field:   "paths",
			Message: fmt.Sprintf("expected a mapping, got %T", raw),
		}}
	}

	table[pathName] = item
	b.logger.Debug("updated path", "path", pathName)
	return &Result{Specs: doc}
}

// GetPath returns the entries of doc["paths"] named by pathNames. Names with no
// entry are omitted. The result is never nil and doc is not modified.
func GetPath(doc map[string]any, pathNames ...string) map[string]any {
	subset := make(map[string]any, len(pathNames))
	table, ok := maputil.Child(doc, "paths")
	if !ok {
		return subset
	}
	for _, name := range pathNames {
		if item, found := table[name]; found {
			subset[name] = item
		}
	}
	return subset
}
