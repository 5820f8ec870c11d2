// Package pathutil provides helpers for OpenAPI path templates and for the file
// paths the CLI writes to.
//
// [TemplateParams] lists the parameters of a path template in order:
//
//	pathutil.TemplateParams("/pets/{petId}/owners/{ownerId}") // ["petId", "ownerId"]
//
// [SanitizeOutputPath] cleans an output path and refuses symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err
//	}
package pathutil
