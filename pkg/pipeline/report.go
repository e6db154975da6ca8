package pipeline

import (
	"encoding/json"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
	"github.com/bloodline-tools/bloodline/pkg/render"
)

// ReportJSON is the serialized form of an inbreeding report, used for the
// json output format and the HTTP report endpoint.
type ReportJSON struct {
	Subject     string      `json:"subject"`
	Generations int         `json:"generations"`
	Summary     string      `json:"summary"`
	Entries     []EntryJSON `json:"entries"`
}

// EntryJSON is one repeated ancestor in a serialized report. Entries include
// subsumed ancestors, flagged rather than dropped, so API consumers can
// apply their own filtering.
type EntryJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Percentage  float64 `json:"percentage"`
	Generations []int   `json:"generations"`
	Branch      string  `json:"branch"`
	Subsumed    bool    `json:"subsumed"`
}

// NewReportJSON flattens a report for serialization. Entries are ordered by
// descending percentage with identifier as the tie-break, same as
// [pedigree.Report.All].
func NewReportJSON(subject string, generations int, report pedigree.Report, store pedigree.Store) ReportJSON {
	all := report.All()
	entries := make([]EntryJSON, 0, len(all))
	for _, e := range all {
		name := e.ID
		if rec, ok := store.Lookup(e.ID); ok {
			name = rec.DisplayName()
		}
		entries = append(entries, EntryJSON{
			ID:          e.ID,
			Name:        name,
			Percentage:  e.Percentage,
			Generations: e.Generations,
			Branch:      string(e.Branch),
			Subsumed:    report.IsSubsumed(e.ID),
		})
	}
	return ReportJSON{
		Subject:     subject,
		Generations: generations,
		Summary:     render.Summary(report, store),
		Entries:     entries,
	}
}

// Marshal serializes the report as indented JSON.
func (r ReportJSON) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
