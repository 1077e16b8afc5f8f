package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TitleCase title-cases each word in s, treating hyphens and slashes as
// word boundaries ("code-review" becomes "Code-Review"). Used for
// directory-derived category names.
func TitleCase(s string) string {
	return titleCaser.String(s)
}
