package render

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// NoInbreeding is the summary shown when the report carries no distinct
// repeated ancestors.
const NoInbreeding = "No inbreeding detected within selected generations."

// Summary renders the one-line inbreeding summary shared by the HTML table,
// the wheel, and the CLI report:
//
//	Northern Dancer 18.75% 3 x 4 / Nearco 9.38% 4 x 5
//
// Entries are the report's distinct ancestors ordered by percentage, with
// generation counts ascending. Country tags are stripped from names to keep
// the line compact. The store resolves identifiers to display names; missing
// records fall back to the bare identifier.
func Summary(report pedigree.Report, store pedigree.Store) string {
	entries := report.Distinct()
	if len(entries) == 0 {
		return NoInbreeding
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		gens := slices.Clone(e.Generations)
		slices.Sort(gens)

		crosses := make([]string, len(gens))
		for i, g := range gens {
			crosses[i] = strconv.Itoa(g)
		}

		name := StripCountry(displayFor(store, e.ID))
		parts = append(parts, fmt.Sprintf("%s %.2f%% %s", name, e.Percentage, strings.Join(crosses, " x ")))
	}
	return strings.Join(parts, " / ")
}
