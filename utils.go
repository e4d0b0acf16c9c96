package jsonschema

import (
	"fmt"
)

// stringifyAny renders an arbitrary template-substitution parameter as
// text, used by Error.Error's {param} substitution.
func stringifyAny(v any) string {
	return fmt.Sprint(v)
}
