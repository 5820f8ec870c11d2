package builder

import (
	"encoding/json"
	"errors"

	"github.com/erraggy/oasdocs/oaserrors"
)

// Result is the outcome of a build or a path edit.
//
// Specs and Err are never both set, except when Err is *oaserrors.ValidationError:
// a resolved document that does not conform is still returned. Path edits always
// return the document they were given.
type Result struct {
	Specs map[string]any
	Err   error
}

// MarshalJSON encodes the result as {"specs": ..., "error": ...}. The error
// object is keyed by its kind ("emptyDocsError", "yamlError", "resolveError",
// "swaggerError", "pathNotFoundError", "documentError") and omitted on success.
func (r Result) MarshalJSON() ([]byte, error) {
	envelope := struct {
		Specs map[string]any `json:"specs"`
		Error map[string]any `json:"error,omitempty"`
	}{
		Specs: r.Specs,
	}
	if r.Err != nil {
		envelope.Error = r.ErrorObject()
	}
	return json.Marshal(envelope)
}

// ErrorObject returns the "error" member of the JSON envelope, or nil on success.
func (r Result) ErrorObject() map[string]any {
	if r.Err == nil {
		return nil
	}
	return errorDescriptor(r.Err)
}

func errorDescriptor(err error) map[string]any {
	var (
		emptyErr    *oaserrors.EmptyDocumentError
		yamlErr     *oaserrors.YAMLError
		resolveErr  *oaserrors.ResolveError
		validateErr *oaserrors.ValidationError
		notFoundErr *oaserrors.PathNotFoundError
		docErr      *oaserrors.DocumentError
	)

	switch {
	case errors.As(err, &emptyErr):
		return map[string]any{"emptyDocsError": map[string]any{"message": emptyErr.Error()}}

	case errors.As(err, &yamlErr):
		desc := map[string]any{"message": yamlErr.Error()}
		if yamlErr.Line > 0 {
			desc["line"] = yamlErr.Line
			desc["column"] = yamlErr.Column
		}
		return map[string]any{"yamlError": desc}

	case errors.As(err, &resolveErr):
		raw := map[string]any{"data": resolveErr.Data}
		if resolveErr.Raw != nil {
			raw["message"] = resolveErr.Raw.Error()
		}
		return map[string]any{"resolveError": resolveErr.Data, "raw": raw}

	case errors.As(err, &validateErr):
		details := validateErr.Details
		if details == nil {
			details = validateErr.Error()
		}
		return map[string]any{"swaggerError": details}

	case errors.As(err, &notFoundErr):
		return map[string]any{"pathNotFoundError": map[string]any{
			"message":  notFoundErr.Error(),
			"pathName": notFoundErr.PathName,
		}}

	case errors.As(err, &docErr):
		return map[string]any{"documentError": map[string]any{
			"message": docErr.Error(),
			"field":   docErr.Field,
		}}

	default:
		return map[string]any{"message": err.Error()}
	}
}
