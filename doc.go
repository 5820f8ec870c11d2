// Package oasdocs builds and edits Swagger/OpenAPI documents from raw YAML or JSON text.
//
// The build pipeline parses text into an untyped tree, fills in missing schema titles
// under "definitions", expands $ref pointers, validates the result, and reports every
// outcome through a single result envelope.
//
// # Packages
//
//   - loader: memoized text-to-tree parsing with a process-wide cache
//   - builder: the document build pipeline and path-scoped editing
//   - resolver: the default $ref resolver (local, file, and HTTP references)
//   - validator: the default Swagger 2.0 / OpenAPI 3.x structural validator
//   - oaserrors: the error taxonomy shared by all packages
//
// # Quick Start
//
//	b := builder.New()
//	result := b.Build(ctx, text)
//	switch {
//	case result.Err == nil:
//		// result.Specs is the resolved document
//	case errors.Is(result.Err, oaserrors.ErrValidation):
//		// result.Specs is still usable
//	default:
//		log.Fatal(result.Err)
//	}
//
// Edit a single path of a built document:
//
//	result = b.UpdatePath("/pets:\n  get: {}", "/pets", result.Specs)
//	pets := builder.GetPath(result.Specs, "/pets")
package oasdocs
