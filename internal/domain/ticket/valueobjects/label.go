package valueobjects

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns a snake_case enum value into title case words.
func Label(value string) string {
	if value == "" {
		return ""
	}
	// cases.Caser keeps state, so one is built per call.
	return cases.Title(language.English).String(strings.ReplaceAll(value, "_", " "))
}
