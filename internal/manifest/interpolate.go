package manifest

import (
	"regexp"
)

// varPattern matches ${varname} placeholders.
var varPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Render substitutes ${var} placeholders in the template with values from
// the binding. Every placeholder must be bound or rendering fails with
// UnboundVariableError; extra binding keys are ignored so templates can
// lag behind the binder.
//
// Rendering is deterministic: no timestamps, no generated IDs. Repeated
// calls with the same inputs produce byte-identical output.
func Render(template string, binding Binding) (string, error) {
	var missing []string
	seen := make(map[string]bool)

	result := varPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := varPattern.FindStringSubmatch(match)[1]

		value, ok := binding[key]
		if !ok {
			if !seen[key] {
				seen[key] = true
				missing = append(missing, key)
			}
			return match
		}

		return value
	})

	if len(missing) > 0 {
		return "", &UnboundVariableError{Names: missing}
	}

	return result, nil
}

// Placeholders returns the distinct placeholder names referenced by the
// template, in order of first occurrence.
func Placeholders(template string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, match := range varPattern.FindAllStringSubmatch(template, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}

	return names
}
