package ticket

import (
	"fmt"
	"regexp"
)

var referencePattern = regexp.MustCompile(`^[A-Z]{2,3}-\d{4,}$`)

// FormatReference renders INITIALS-NNNN, widening past four digits as
// needed.
func FormatReference(initials string, seq int64) string {
	return fmt.Sprintf("%s-%04d", initials, seq)
}

func IsValidReference(reference string) bool {
	return referencePattern.MatchString(reference)
}
