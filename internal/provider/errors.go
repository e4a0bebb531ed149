package provider

import "fmt"

// UnsupportedProviderError indicates no deployment strategy is registered
// for a provider key. It is raised before any provider-specific side
// effect occurs.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported cloud provider %q", e.Provider)
}
