package namemap

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify derives a party id from a display name: the name is lowercased
// with root-locale rules and every run of whitespace becomes one hyphen.
// Leading and trailing whitespace is dropped. The result does not depend on
// the process locale.
func Slugify(displayName string) string {
	lower := cases.Lower(language.Und).String(displayName)
	return strings.Join(strings.Fields(lower), "-")
}
