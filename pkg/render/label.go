package render

import (
	"regexp"
	"strings"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// countryTagRe matches a trailing parenthesized country tag, e.g. "(USA)".
var countryTagRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// StripCountry removes a trailing country tag from a name.
// "Secretariat (USA)" becomes "Secretariat".
func StripCountry(name string) string {
	return strings.TrimSpace(countryTagRe.ReplaceAllString(name, ""))
}

// nameYear renders "Name Year", dropping whichever part is empty.
func nameYear(rec pedigree.Individual) string {
	return strings.TrimSpace(rec.DisplayName() + " " + rec.Year)
}

// displayFor resolves the label for an identifier through the store,
// falling back to the bare identifier for missing records.
func displayFor(store pedigree.Store, id string) string {
	rec, ok := store.Lookup(id)
	if !ok {
		return id
	}
	return rec.DisplayName()
}
