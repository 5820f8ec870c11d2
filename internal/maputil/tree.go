package maputil

import (
	"fmt"
	"reflect"
)

// DeepCopy returns a copy of a YAML/JSON tree that shares no maps or slices with v.
// Mappings keyed by non-strings (YAML allows `200:` as an integer key) are converted
// to map[string]any with fmt-formatted keys, so every mapping in the result is a
// map[string]any.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, item := range t {
			cp[k] = DeepCopy(item)
		}
		return cp
	case map[any]any:
		cp := make(map[string]any, len(t))
		for k, item := range t {
			cp[fmt.Sprint(k)] = DeepCopy(item)
		}
		return cp
	case []any:
		cp := make([]any, len(t))
		for i, item := range t {
			cp[i] = DeepCopy(item)
		}
		return cp
	default:
		// Primitives copy by value
		return v
	}
}

// Mapping returns v as a map[string]any, or false if v is not a string-keyed mapping.
func Mapping(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// Child returns m[key] as a mapping, or false when absent or not a mapping.
func Child(m map[string]any, key string) (map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	return Mapping(m[key])
}

// String returns m[key] as a string, or "" when absent or not a string.
func String(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// IsEmpty reports whether v is nil, a nil pointer, or a zero-length string, map,
// slice or array. Numbers and booleans are never empty.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
