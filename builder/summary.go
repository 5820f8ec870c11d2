package builder

import (
	"slices"
	"strings"

	"github.com/erraggy/oasdocs/internal/httputil"
	"github.com/erraggy/oasdocs/internal/maputil"
)

// Summary is a structural overview of a document.
type Summary struct {
	Version         string   `json:"version"`
	Title           string   `json:"title"`
	APIVersion      string   `json:"api_version,omitempty"`
	PathCount       int      `json:"path_count"`
	OperationCount  int      `json:"operation_count"`
	DefinitionCount int      `json:"definition_count"`
	Tags            []string `json:"tags,omitempty"`
}

// Summarize counts the paths, operations and definitions of doc. A nil doc
// yields a zero Summary.
func Summarize(doc map[string]any) Summary {
	var s Summary
	if doc == nil {
		return s
	}

	s.Version = maputil.String(doc, "swagger")
	methods := httputil.SwaggerMethods
	definitions, _ := maputil.Child(doc, "definitions")
	if s.Version == "" {
		s.Version = maputil.String(doc, "openapi")
		methods = httputil.OpenAPIMethods
		if components, ok := maputil.Child(doc, "components"); ok {
			definitions, _ = maputil.Child(components, "schemas")
		}
	}

	if info, ok := maputil.Child(doc, "info"); ok {
		s.Title = maputil.String(info, "title")
		s.APIVersion = maputil.String(info, "version")
	}

	if paths, ok := maputil.Child(doc, "paths"); ok {
		for name, item := range paths {
			itemMap, ok := maputil.Mapping(item)
			if !ok || strings.HasPrefix(name, "x-") {
				continue
			}
			s.PathCount++
			for method := range itemMap {
				if slices.Contains(methods, method) {
					s.OperationCount++
				}
			}
		}
	}
	s.DefinitionCount = len(definitions)

	if tags, ok := doc["tags"].([]any); ok {
		for _, tag := range tags {
			if m, ok := maputil.Mapping(tag); ok {
				if name := maputil.String(m, "name"); name != "" {
					s.Tags = append(s.Tags, name)
				}
			}
		}
	}
	return s
}
