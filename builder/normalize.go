package builder

import "github.com/erraggy/oasdocs/internal/maputil"

// NormalizeDefinitions sets the title of every definitions entry that lacks one to
// the entry's key. A title counts as missing when it is absent, nil or empty.
// Entries that are not mappings are skipped. tree is modified in place.
func NormalizeDefinitions(tree map[string]any) {
	definitions, ok := maputil.Child(tree, "definitions")
	if !ok {
		return
	}
	for name, raw := range definitions {
		def, ok := maputil.Mapping(raw)
		if !ok {
			continue
		}
		if maputil.IsEmpty(def["title"]) {
			def["title"] = name
		}
	}
}
