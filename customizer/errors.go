package customizer

import "fmt"

// ConfigurationError is raised at factory or customizer construction
// when a required setting is missing — e.g. no region, no stream name
// (spec §7). It is always fatal: the caller must fix configuration and
// restart, not retry.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}
