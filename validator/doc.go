// Package validator checks a resolved OpenAPI document for conformance.
//
// The validator works on the structural tree produced by the loader and expanded
// by the resolver, so it accepts any document shape and reports what is wrong
// rather than failing to decode. Both Swagger 2.0 and OpenAPI 3.x documents are
// recognized.
//
// # Checks
//
//   - version field: swagger "2.0" or openapi "3.x"
//   - info object with title and version
//   - path keys begin with "/" and are well-formed templates
//   - every operation has a non-empty responses map with valid status codes
//   - operationIds are unique
//   - parameters have a name and a valid location
//   - path template parameters are declared (warning)
//   - definitions (components.schemas for 3.x) entries are objects
//
// # Validation Levels
//
// Errors make a document invalid. Warnings are best-practice findings; they are
// only reported when IncludeWarnings is set and only fail validation in strict
// mode.
//
//	v := validator.New(validator.WithStrictMode(true))
//	if err := v.ValidateSwagger(doc); err != nil {
//	    var vErr *oaserrors.ValidationError
//	    if errors.As(err, &vErr) {
//	        for _, issue := range vErr.Details.([]validator.Issue) {
//	            fmt.Println(issue)
//	        }
//	    }
//	}
package validator
