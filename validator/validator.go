package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasdocs/internal/issues"
	"github.com/erraggy/oasdocs/internal/maputil"
	"github.com/erraggy/oasdocs/internal/severity"
	"github.com/erraggy/oasdocs/internal/stringutil"
	"github.com/erraggy/oasdocs/oaserrors"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a spec violation that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a best practice violation or recommendation
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates a document that could not be checked further
	SeverityCritical = severity.SeverityCritical
)

// Issue represents a single validation finding
type Issue = issues.Issue

const (
	swaggerSpecURL = "https://spec.openapis.org/oas/v2.0.html"
	openAPISpecURL = "https://spec.openapis.org/oas/v3.0.3.html"
)

// Result contains the findings of validating a document
type Result struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Version is the detected version string ("2.0", "3.0.3", ...)
	Version string
	// Errors contains all validation errors
	Errors []Issue
	// Warnings contains all validation warnings
	Warnings []Issue
}

// ErrorCount returns the number of errors.
func (r *Result) ErrorCount() int { return len(r.Errors) }

// WarningCount returns the number of warnings.
func (r *Result) WarningCount() int { return len(r.Warnings) }

// Issues returns errors followed by warnings.
func (r *Result) Issues() []Issue {
	all := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	all = append(all, r.Errors...)
	return append(all, r.Warnings...)
}

// Validator handles OpenAPI specification validation
type Validator struct {
	// IncludeWarnings determines whether to include best practice warnings
	IncludeWarnings bool
	// StrictMode enables stricter validation beyond what OpenAPI requires
	StrictMode bool
}

// New creates a new Validator. Warnings are included and strict mode is off
// unless options say otherwise.
func New(opts ...Option) *Validator {
	v := &Validator{IncludeWarnings: true}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateSwagger validates doc and returns nil when it conforms. Otherwise it
// returns *oaserrors.ValidationError with Details holding the []Issue found.
// Warnings make the document invalid only in strict mode.
func (v *Validator) ValidateSwagger(doc map[string]any) error {
	result := v.Validate(doc)
	if result.Valid && (!v.StrictMode || result.WarningCount() == 0) {
		return nil
	}
	return &oaserrors.ValidationError{
		Details: result.Issues(),
		Message: fmt.Sprintf("%d error(s), %d warning(s)", result.ErrorCount(), result.WarningCount()),
	}
}

// Validate checks doc and reports every finding.
func (v *Validator) Validate(doc map[string]any) *Result {
	result := &Result{}
	defer func() {
		result.Valid = !slices.ContainsFunc(result.Errors, Issue.IsBlocking)
	}()

	if doc == nil {
		result.Errors = append(result.Errors, Issue{
			Path:     "document",
			Message:  "document is empty",
			Severity: SeverityCritical,
		})
		return result
	}

	c := &checker{Validator: v, result: result}
	if !c.detectVersion(doc) {
		return result
	}

	c.checkInfo(doc)
	c.checkPaths(doc)
	if c.openAPI {
		components, _ := maputil.Mapping(doc["components"])
		c.checkSchemas(components, "components.schemas", "#components-object")
	} else {
		c.checkMediaTypes(doc, "")
		c.checkSchemas(doc, "definitions", "#definitions-object")
	}
	return result
}

// checker holds the state of one Validate call.
type checker struct {
	*Validator
	result  *Result
	openAPI bool
	specURL string
	// operationIds maps each operationId to where it was first seen
	operationIds map[string]string
}

func (c *checker) addError(path, message string, opts ...func(*Issue)) {
	issue := Issue{Path: path, Message: message, Severity: SeverityError}
	for _, opt := range opts {
		opt(&issue)
	}
	c.result.Errors = append(c.result.Errors, issue)
}

func (c *checker) addWarning(path, message string, opts ...func(*Issue)) {
	if !c.IncludeWarnings {
		return
	}
	issue := Issue{Path: path, Message: message, Severity: SeverityWarning}
	for _, opt := range opts {
		opt(&issue)
	}
	c.result.Warnings = append(c.result.Warnings, issue)
}

// withField sets the Field on an Issue.
func withField(field string) func(*Issue) {
	return func(i *Issue) { i.Field = field }
}

// withValue sets the Value on an Issue.
func withValue(value any) func(*Issue) {
	return func(i *Issue) { i.Value = value }
}

// withSpecRef sets the SpecRef on an Issue.
func (c *checker) withSpecRef(anchor string) func(*Issue) {
	return func(i *Issue) { i.SpecRef = c.specURL + anchor }
}

// detectVersion reads the swagger/openapi field. It returns false when the
// document cannot be checked any further.
func (c *checker) detectVersion(doc map[string]any) bool {
	if raw, ok := doc["swagger"]; ok {
		c.specURL = swaggerSpecURL
		version, isString := raw.(string)
		if !isString || version != "2.0" {
			c.result.Errors = append(c.result.Errors, Issue{
				Path:     "swagger",
				Message:  `swagger field must be the string "2.0"`,
				Severity: SeverityCritical,
				Field:    "swagger",
				Value:    raw,
				SpecRef:  swaggerSpecURL + "#swagger-object",
			})
			return false
		}
		c.result.Version = version
		return true
	}

	if raw, ok := doc["openapi"]; ok {
		c.specURL = openAPISpecURL
		version, isString := raw.(string)
		if !isString || !strings.HasPrefix(version, "3.") {
			c.result.Errors = append(c.result.Errors, Issue{
				Path:     "openapi",
				Message:  `openapi field must be a "3.x" version string`,
				Severity: SeverityCritical,
				Field:    "openapi",
				Value:    raw,
				SpecRef:  openAPISpecURL + "#openapi-object",
			})
			return false
		}
		c.openAPI = true
		c.result.Version = version
		return true
	}

	c.result.Errors = append(c.result.Errors, Issue{
		Path:     "document",
		Message:  "missing swagger or openapi version field",
		Severity: SeverityCritical,
	})
	return false
}

func (c *checker) checkInfo(doc map[string]any) {
	raw, ok := doc["info"]
	if !ok {
		c.addError("info", "Document must have an info object", c.withSpecRef("#info-object"))
		return
	}
	info, ok := raw.(map[string]any)
	if !ok {
		c.addError("info", "info must be an object", c.withSpecRef("#info-object"), withValue(raw))
		return
	}

	for _, field := range []string{"title", "version"} {
		value, isString := info[field].(string)
		switch {
		case info[field] == nil:
			c.addError("info."+field, fmt.Sprintf("Info object must have a %s", field),
				c.withSpecRef("#info-object"), withField(field))
		case !isString:
			c.addError("info."+field, fmt.Sprintf("Info %s must be a string", field),
				c.withSpecRef("#info-object"), withField(field), withValue(info[field]))
		case strings.TrimSpace(value) == "":
			c.addError("info."+field, fmt.Sprintf("Info %s must not be empty", field),
				c.withSpecRef("#info-object"), withField(field))
		}
	}

	if contact, ok := maputil.Child(info, "contact"); ok {
		if email := maputil.String(contact, "email"); email != "" && !stringutil.IsValidEmail(email) {
			c.addWarning("info.contact.email", "Contact email is not a valid email address",
				c.withSpecRef("#contact-object"), withField("email"), withValue(email))
		}
		if u := maputil.String(contact, "url"); u != "" && !stringutil.IsAbsoluteURL(u) {
			c.addWarning("info.contact.url", "Contact url must be an absolute URL",
				c.withSpecRef("#contact-object"), withField("url"), withValue(u))
		}
	}
	if license, ok := maputil.Child(info, "license"); ok && maputil.String(license, "name") == "" {
		c.addError("info.license.name", "License object must have a name",
			c.withSpecRef("#license-object"), withField("name"))
	}
}

// checkSchemas verifies that every named schema under parent[key] is an object.
func (c *checker) checkSchemas(parent map[string]any, path, anchor string) {
	if parent == nil {
		return
	}
	key := path[strings.LastIndexByte(path, '.')+1:]
	raw, ok := parent[key]
	if !ok {
		return
	}
	schemas, ok := raw.(map[string]any)
	if !ok {
		c.addError(path, fmt.Sprintf("%s must be an object", key), c.withSpecRef(anchor), withValue(raw))
		return
	}
	for _, name := range maputil.SortedKeys(schemas) {
		if _, ok := schemas[name].(map[string]any); !ok {
			c.addError(path+"."+name, "Schema must be an object",
				c.withSpecRef("#schema-object"), withValue(schemas[name]))
		}
	}
}
