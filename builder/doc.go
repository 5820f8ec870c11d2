// Package builder turns raw OpenAPI text into a resolved, validated document and
// edits the path table of a built document.
//
// # Pipeline
//
// [Builder.Build] parses text through a memoizing [loader.Cache], backfills
// missing definition titles ([NormalizeDefinitions]), expands $ref pointers with a
// Resolver and finally checks the result with a Validator. Every outcome arrives
// as a [Result]; Build never panics and never returns a Go error alongside it:
//
//	b := builder.New()
//	result := b.Build(ctx, text)
//	switch {
//	case result.Err == nil:
//	    // result.Specs is resolved and valid
//	case errors.Is(result.Err, oaserrors.ErrValidation):
//	    // result.Specs is resolved but does not conform
//	default:
//	    // result.Specs is nil
//	}
//
// [Builder.BuildAsync] runs the same pipeline on a goroutine and delivers exactly
// one Result on the returned channel.
//
// # Path editing
//
// [Builder.UpdatePath] replaces a single entry of a document's paths table with the
// entry of the same name in a YAML/JSON fragment. [GetPath] selects entries from
// the paths table without modifying the document.
//
//	result := b.UpdatePath("/pets:\n  get:\n    responses: {}\n", "/pets", doc)
//	subset := builder.GetPath(doc, "/pets", "/owners")
//
// # Collaborators
//
// The loader, resolver and validator are interfaces so that tests and embedders
// can substitute their own. By default the process-wide [loader.Default] cache, a
// local-only [resolver.Resolver] and a non-strict [validator.Validator] are used.
package builder
