package code

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an identifier the engine has no table for, such
// as an unknown building code or member type. There is no fallback: the caller
// must fix its integration.
type ConfigurationError struct {
	Kind      string   // "building code", "member type"
	Value     string   // the rejected identifier
	Supported []string // accepted identifiers
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported %s %q (supported: %s)", e.Kind, e.Value, strings.Join(e.Supported, ", "))
}
