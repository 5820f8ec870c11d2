// Package resolver expands $ref pointers in an untyped OpenAPI tree.
//
// It is the default resolver used by the builder package. Three kinds of reference
// are supported:
//
//   - local: "#/definitions/Pet" (RFC 6901 JSON Pointer, including array indexes)
//   - file: "common.yaml#/definitions/Error", relative to the configured base directory
//   - http: "https://example.com/common.yaml#/definitions/Error", only when an HTTP
//     client is configured with [WithHTTPClient]
//
// References inside an external document are resolved against that document, so a
// "#/..." pointer in common.yaml points into common.yaml.
//
// Circular references are left in place as {"$ref": ...} objects rather than expanded
// forever. Sibling keys of a $ref object are dropped, as OAS 2.0 requires.
package resolver
