// Package oaserrors provides structured error types for oasdocs.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to tell apart the outcomes of a document build
// without inspecting message text.
//
// # Error Categories
//
//   - EmptyDocumentError: no input text was supplied
//   - YAMLError: the input text is not well-formed YAML/JSON
//   - ResolveError: $ref expansion failed; carries the resolver's failure data
//   - ValidationError: the document resolved but does not conform; the document is still returned
//   - ReferenceError: a single $ref could not be followed (missing, circular, traversal)
//   - FetchError: an external reference could not be retrieved over HTTP
//   - PathNotFoundError: a path fragment did not contain the path being edited
//   - DocumentError: the target document cannot be edited
//   - ResourceLimitError: resource exhaustion (depth, size, count limits)
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	result := b.Build(ctx, text)
//	if errors.Is(result.Err, oaserrors.ErrValidation) {
//	    // result.Specs is populated even though validation failed
//	}
package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrEmptyDocument indicates no document text was provided.
	ErrEmptyDocument = errors.New("empty document")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrResolve indicates the resolver failed to expand the document.
	ErrResolve = errors.New("resolve error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrPathTraversal indicates a path traversal attempt was blocked.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrFetch indicates an external document could not be fetched.
	ErrFetch = errors.New("fetch error")

	// ErrValidation indicates a specification validation failure.
	ErrValidation = errors.New("validation error")

	// ErrPathNotFound indicates a path fragment lacked the targeted path.
	ErrPathNotFound = errors.New("path not found")

	// ErrDocument indicates the target document has an unusable shape.
	ErrDocument = errors.New("document error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// DataCarrier is implemented by failures that expose a payload describing the cause,
// such as the body of a failed HTTP fetch. The builder copies the payload into
// ResolveError.Data.
type DataCarrier interface {
	Data() any
}

// EmptyDocumentError is returned when a build is requested without any input.
type EmptyDocumentError struct{}

// Error returns a human-readable error message.
func (e *EmptyDocumentError) Error() string {
	return "Empty Document"
}

// Is reports whether target matches this error type.
func (e *EmptyDocumentError) Is(target error) bool {
	return target == ErrEmptyDocument
}

// YAMLError represents a failure to parse input text.
type YAMLError struct {
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure when there is no underlying cause
	Message string
	// Cause is the underlying parser error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *YAMLError) Error() string {
	msg := "yaml error"
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	return chain(msg, e.Message, causeText(e.Cause))
}

// Unwrap returns the underlying cause for error chaining.
func (e *YAMLError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *YAMLError) Is(target error) bool {
	return target == ErrParse
}

// ResolveError represents a failed $ref expansion of a whole document.
type ResolveError struct {
	// Data is the collaborator-supplied description of the failure
	Data any
	// Raw is the failure exactly as the resolver returned it
	Raw error
}

// Error returns a human-readable error message.
func (e *ResolveError) Error() string {
	msg := "resolve error"
	if e.Raw != nil {
		msg += ": " + e.Raw.Error()
	} else if e.Data != nil {
		msg += fmt.Sprintf(": %v", e.Data)
	}
	return msg
}

// Unwrap returns the raw resolver failure for error chaining.
func (e *ResolveError) Unwrap() error {
	return e.Raw
}

// Is reports whether target matches this error type.
func (e *ResolveError) Is(target error) bool {
	return target == ErrResolve
}

// ValidationError represents an OpenAPI specification violation of a resolved document.
type ValidationError struct {
	// Details is the validator-supplied description of the violations
	Details any
	// Message summarizes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return chain(ErrValidation.Error(), e.Message, causeText(e.Cause))
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ReferenceError is a single $ref that could not be followed. RefType is
// "local", "file" or "http". The flags mark refs that loop back on themselves
// or escape the base directory.
type ReferenceError struct {
	Ref             string
	RefType         string
	IsCircular      bool
	IsPathTraversal bool
	Message         string
	Cause           error
}

func (e *ReferenceError) Error() string {
	head := ErrReference.Error()
	switch {
	case e.IsCircular:
		head = ErrCircularReference.Error()
	case e.IsPathTraversal:
		head = ErrPathTraversal.Error()
	}
	return chain(head, e.Ref, e.Message, causeText(e.Cause))
}

func (e *ReferenceError) Unwrap() error { return e.Cause }

// Is matches ErrReference, and ErrCircularReference or ErrPathTraversal when
// the corresponding flag is set.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrCircularReference:
		return e.IsCircular
	case ErrPathTraversal:
		return e.IsPathTraversal
	}
	return false
}

// Data implements DataCarrier as {"ref": ..., "message": ...}.
func (e *ReferenceError) Data() any {
	msg := e.Message
	if msg == "" {
		msg = causeText(e.Cause)
	}
	if msg == "" {
		msg = e.Error()
	}
	return map[string]any{"ref": e.Ref, "message": msg}
}

// FetchError is an external document that could not be retrieved. StatusCode
// is 0 when no response arrived; Body holds the answer of a non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int
	Body       string
	Cause      error
}

func (e *FetchError) Error() string {
	status := ""
	if e.StatusCode > 0 {
		status = fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return chain(ErrFetch.Error(), e.URL, status, causeText(e.Cause))
}

func (e *FetchError) Unwrap() error { return e.Cause }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Data implements DataCarrier: the response body when the server answered,
// otherwise the transport failure text.
func (e *FetchError) Data() any {
	if e.Body != "" {
		return e.Body
	}
	return e.Error()
}

// PathNotFoundError reports a path fragment that does not define PathName.
type PathNotFoundError struct {
	PathName string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found in fragment: %q", e.PathName)
}

func (e *PathNotFoundError) Is(target error) bool { return target == ErrPathNotFound }

// DocumentError is a target document whose shape prevents an edit.
type DocumentError struct {
	Field   string
	Message string
}

func (e *DocumentError) Error() string {
	head := ErrDocument.Error()
	if e.Field != "" {
		head += " at " + e.Field
	}
	return chain(head, e.Message)
}

func (e *DocumentError) Is(target error) bool { return target == ErrDocument }

// ResourceLimitError reports a configured limit the resolver ran into.
// ResourceType is one of "ref_depth", "cached_documents" or "file_size". Actual
// is 0 when unknown.
type ResourceLimitError struct {
	ResourceType string
	Limit        int64
	Actual       int64
	Message      string
}

func (e *ResourceLimitError) Error() string {
	head := chain(ErrResourceLimit.Error(), e.ResourceType)
	switch {
	case e.Limit > 0 && e.Actual > 0:
		head += fmt.Sprintf(" (limit: %d, actual: %d)", e.Limit, e.Actual)
	case e.Limit > 0:
		head += fmt.Sprintf(" (limit: %d)", e.Limit)
	}
	return chain(head, e.Message)
}

func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConfigError is an invalid option value. Value may be nil.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	head := ErrConfig.Error()
	if e.Option != "" {
		head += " for " + e.Option
	}
	if e.Value != nil {
		head += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return chain(head, e.Message, causeText(e.Cause))
}

func (e *ConfigError) Unwrap() error { return e.Cause }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// chain joins head and the non-empty parts with ": ".
func chain(head string, parts ...string) string {
	var b strings.Builder
	b.WriteString(head)
	for _, p := range parts {
		if p != "" {
			b.WriteString(": ")
			b.WriteString(p)
		}
	}
	return b.String()
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
