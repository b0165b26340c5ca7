// Package identity defines the canonical form of a person's name.
//
// One individual appears in dozens of files with inconsistent casing and
// spacing ("DOE , JANE", "doe,jane", "Doe, Jane "). Exactly one Person row
// must exist per distinct normalized (first, last) pair, so the same fold is
// applied to every value at ingestion time, whether it is being stored or
// looked up.
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Key is the canonical lookup key for one person.
type Key struct {
	First string
	Last  string
}

// Fold normalizes one name cell: trim, collapse runs of inner whitespace,
// title-case. "Fold("  jane  q ") == "Jane Q".
func Fold(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return titleCaser.String(strings.Join(fields, " "))
}

// KeyOf builds the canonical key for a (first, last) pair.
func KeyOf(first, last string) Key {
	return Key{First: Fold(first), Last: Fold(last)}
}
