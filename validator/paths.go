// This file implements path template validation and operation checks for the
// paths object.

package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasdocs/internal/httputil"
	"github.com/erraggy/oasdocs/internal/maputil"
	"github.com/erraggy/oasdocs/internal/pathutil"
)

var (
	swaggerParamLocations = []string{"query", "header", "path", "formData", "body"}
	openAPIParamLocations = []string{"query", "header", "path", "cookie"}
)

// validatePathTemplate validates that a path template is well-formed
// Returns an error if the template is malformed (unclosed braces, empty parameters, etc.)
func validatePathTemplate(pathPattern string) error {
	if strings.Contains(pathPattern, "{}") {
		return fmt.Errorf("empty parameter name in path template")
	}
	if strings.Contains(pathPattern, "//") {
		return fmt.Errorf("path contains consecutive slashes")
	}
	// fragment identifier and query string
	if strings.ContainsAny(pathPattern, "#?") {
		return fmt.Errorf("path contains reserved character '%c'", pathPattern[strings.IndexAny(pathPattern, "#?")])
	}

	openCount := 0
	for i, ch := range pathPattern {
		switch ch {
		case '{':
			openCount++
			if openCount > 1 {
				return fmt.Errorf("nested braces are not allowed at position %d", i)
			}
		case '}':
			openCount--
			if openCount < 0 {
				return fmt.Errorf("unexpected closing brace at position %d", i)
			}
		}
	}
	if openCount != 0 {
		return fmt.Errorf("unclosed brace in path template")
	}

	seen := make(map[string]bool)
	for _, name := range pathutil.TemplateParams(pathPattern) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty parameter name in path template")
		}
		if seen[name] {
			return fmt.Errorf("duplicate parameter name '%s' in path template", name)
		}
		seen[name] = true
	}
	return nil
}

func (c *checker) checkPaths(doc map[string]any) {
	raw, ok := doc["paths"]
	if !ok {
		// OAS 3.1 made paths optional
		if !c.openAPI || strings.HasPrefix(c.result.Version, "3.0") {
			c.addError("paths", "Document must have a paths object", c.withSpecRef("#paths-object"))
		}
		return
	}
	paths, ok := raw.(map[string]any)
	if !ok {
		c.addError("paths", "paths must be an object", c.withSpecRef("#paths-object"), withValue(raw))
		return
	}

	c.operationIds = make(map[string]string)
	for _, pathPattern := range maputil.SortedKeys(paths) {
		if strings.HasPrefix(pathPattern, "x-") {
			continue
		}
		itemPath := "paths." + pathPattern

		if !strings.HasPrefix(pathPattern, "/") {
			c.addError(itemPath, "Path must begin with '/'",
				c.withSpecRef("#paths-object"), withValue(pathPattern))
			continue
		}
		if err := validatePathTemplate(pathPattern); err != nil {
			c.addError(itemPath, fmt.Sprintf("Invalid path template: %s", err),
				c.withSpecRef("#path-templating"), withValue(pathPattern))
			continue
		}
		if len(pathPattern) > 1 && strings.HasSuffix(pathPattern, "/") {
			c.addWarning(itemPath, "Path has trailing slash, which is discouraged by REST best practices",
				c.withSpecRef("#paths-object"), withValue(pathPattern))
		}

		item, ok := paths[pathPattern].(map[string]any)
		if !ok {
			c.addError(itemPath, "Path item must be an object",
				c.withSpecRef("#path-item-object"), withValue(paths[pathPattern]))
			continue
		}
		c.checkPathItem(pathPattern, item)
	}
}

func (c *checker) checkPathItem(pathPattern string, item map[string]any) {
	itemPath := "paths." + pathPattern
	shared := c.checkParameters(item, itemPath)

	methods := httputil.SwaggerMethods
	if c.openAPI {
		methods = httputil.OpenAPIMethods
	}
	for _, method := range methods {
		raw, ok := item[method]
		if !ok {
			continue
		}
		opPath := itemPath + "." + method
		op, ok := raw.(map[string]any)
		if !ok {
			c.addError(opPath, "Operation must be an object",
				c.withSpecRef("#operation-object"), withValue(raw))
			continue
		}

		c.checkResponses(op, opPath)
		c.checkOperationID(op, opPath)
		if !c.openAPI {
			c.checkMediaTypes(op, opPath+".")
		}

		declared := c.checkParameters(op, opPath)
		for name := range shared {
			declared[name] = true
		}
		for _, name := range pathutil.TemplateParams(pathPattern) {
			if !declared[name] {
				c.addWarning(opPath+".parameters",
					fmt.Sprintf("Path parameter '%s' in template is not declared", name),
					c.withSpecRef("#path-templating"), withValue(name))
			}
		}
	}
}

func (c *checker) checkResponses(op map[string]any, opPath string) {
	raw, ok := op["responses"]
	if !ok {
		c.addError(opPath+".responses", "Operation must have a responses object",
			c.withSpecRef("#responses-object"), withField("responses"))
		return
	}
	responses, ok := raw.(map[string]any)
	if !ok || len(responses) == 0 {
		c.addError(opPath+".responses", "Operation responses must be a non-empty object",
			c.withSpecRef("#responses-object"), withField("responses"), withValue(raw))
		return
	}

	hasSuccess := false
	for _, code := range maputil.SortedKeys(responses) {
		switch {
		case !httputil.ValidateStatusCode(code):
			c.addError(fmt.Sprintf("%s.responses.%s", opPath, code),
				fmt.Sprintf("Invalid HTTP status code: %s", code),
				c.withSpecRef("#responses-object"), withValue(code))
		case c.StrictMode && httputil.IsNumericStatusCode(code) && !httputil.IsStandardStatusCode(code):
			c.addWarning(fmt.Sprintf("%s.responses.%s", opPath, code),
				fmt.Sprintf("Non-standard HTTP status code: %s (not defined in HTTP RFCs)", code),
				c.withSpecRef("#responses-object"), withValue(code))
		}
		if strings.HasPrefix(code, "2") || code == "default" {
			hasSuccess = true
		}
	}
	if !hasSuccess && c.StrictMode {
		c.addWarning(opPath+".responses",
			"Operation should define at least one successful response (2XX or default)",
			c.withSpecRef("#responses-object"))
	}
}

func (c *checker) checkOperationID(op map[string]any, opPath string) {
	id, _ := op["operationId"].(string)
	if id == "" {
		return
	}
	if firstSeenAt, exists := c.operationIds[id]; exists {
		c.addError(opPath, fmt.Sprintf("Duplicate operationId '%s' (first seen at %s)", id, firstSeenAt),
			c.withSpecRef("#operation-object"), withField("operationId"), withValue(id))
		return
	}
	c.operationIds[id] = opPath
}

// checkParameters validates owner["parameters"] and returns the names of the path
// parameters it declares.
func (c *checker) checkParameters(owner map[string]any, ownerPath string) map[string]bool {
	declared := make(map[string]bool)
	raw, ok := owner["parameters"]
	if !ok {
		return declared
	}
	params, ok := raw.([]any)
	if !ok {
		c.addError(ownerPath+".parameters", "parameters must be an array",
			c.withSpecRef("#parameter-object"), withValue(raw))
		return declared
	}

	locations := swaggerParamLocations
	if c.openAPI {
		locations = openAPIParamLocations
	}
	for i, rawParam := range params {
		paramPath := fmt.Sprintf("%s.parameters[%d]", ownerPath, i)
		param, ok := rawParam.(map[string]any)
		if !ok {
			c.addError(paramPath, "Parameter must be an object",
				c.withSpecRef("#parameter-object"), withValue(rawParam))
			continue
		}
		// left in place by the resolver (circular)
		if _, isRef := param["$ref"]; isRef {
			continue
		}

		name, _ := param["name"].(string)
		if name == "" {
			c.addError(paramPath, "Parameter must have a name",
				c.withSpecRef("#parameter-object"), withField("name"))
		}
		in, _ := param["in"].(string)
		if !slices.Contains(locations, in) {
			c.addError(paramPath, fmt.Sprintf("Invalid parameter location '%v' (must be one of %s)", param["in"], strings.Join(locations, ", ")),
				c.withSpecRef("#parameter-object"), withField("in"), withValue(param["in"]))
			continue
		}
		if in == "path" {
			if required, _ := param["required"].(bool); !required {
				c.addError(paramPath, fmt.Sprintf("Path parameter '%s' must be required", name),
					c.withSpecRef("#parameter-object"), withField("required"))
			}
			if name != "" {
				declared[name] = true
			}
		}
	}
	return declared
}

// checkMediaTypes verifies the Swagger consumes and produces lists of node.
// prefix is prepended to the field name in issue paths.
func (c *checker) checkMediaTypes(node map[string]any, prefix string) {
	for _, field := range []string{"consumes", "produces"} {
		raw, ok := node[field]
		if !ok {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			c.addError(prefix+field, fmt.Sprintf("%s must be an array of media types", field),
				withField(field), withValue(raw))
			continue
		}
		for i, entry := range list {
			mediaType, _ := entry.(string)
			if !httputil.IsValidMediaType(mediaType) {
				c.addError(fmt.Sprintf("%s%s[%d]", prefix, field, i),
					fmt.Sprintf("Invalid media type: %v", entry),
					withField(field), withValue(entry))
			}
		}
	}
}
