package pathutil

import "regexp"

var templateParam = regexp.MustCompile(`\{([^}]+)\}`)

// TemplateParams returns the parameter names of a path template in the order
// they appear. Duplicates are kept.
func TemplateParams(pathPattern string) []string {
	var names []string
	for _, m := range templateParam.FindAllStringSubmatch(pathPattern, -1) {
		names = append(names, m[1])
	}
	return names
}
