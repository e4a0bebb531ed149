package manifest

import (
	"fmt"
	"strings"
)

// UnknownProviderError indicates no pod template exists for a provider key.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("no pod template registered for provider %q", e.Provider)
}

// UnboundVariableError indicates a template references placeholders that
// the binding does not supply. Names holds every missing placeholder in
// template order, first occurrence only.
type UnboundVariableError struct {
	Names []string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound template variables: ${%s}", strings.Join(e.Names, "}, ${"))
}

// Has reports whether name is one of the missing placeholders.
func (e *UnboundVariableError) Has(name string) bool {
	for _, n := range e.Names {
		if n == name {
			return true
		}
	}
	return false
}
