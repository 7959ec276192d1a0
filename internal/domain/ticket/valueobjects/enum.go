package valueobjects

import (
	"fmt"
	"slices"
	"strings"
)

// parseEnum accepts s only when it is one of allowed, compared exactly.
func parseEnum[T ~string](kind, s string, allowed []T) (T, error) {
	v := T(s)
	if !slices.Contains(allowed, v) {
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		return "", fmt.Errorf("invalid %s %q, want one of %s", kind, s, strings.Join(names, ", "))
	}
	return v, nil
}
