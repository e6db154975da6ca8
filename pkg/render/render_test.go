package render

import (
	"testing"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// inbredStore builds a small herd where the subject's paternal and maternal
// grandsires are the same stallion, giving a 2 x 2 cross on "legend".
func inbredStore() pedigree.MapStore {
	store := pedigree.MapStore{}
	store.Add(pedigree.Individual{ID: "subj", Name: "Subject (JPN)", Year: "2018", SireID: "f", DamID: "m"})
	store.Add(pedigree.Individual{ID: "f", Name: "Father", Sex: pedigree.SexMale, Year: "2010", SireID: "legend"})
	store.Add(pedigree.Individual{ID: "m", Name: "Mother", Sex: pedigree.SexFemale, Year: "2011", SireID: "legend"})
	store.Add(pedigree.Individual{ID: "legend", Name: "Legend (USA)", Sex: pedigree.SexMale, Year: "1995"})
	return store
}

// analyzedTree returns the expanded tree with spans assigned plus the
// matching inbreeding report.
func analyzedTree(t *testing.T, store pedigree.MapStore, id string, generations int) (*pedigree.Node, pedigree.Report) {
	t.Helper()

	root, err := pedigree.Build(store, id, generations)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pedigree.AssignSpans(root)

	report, err := pedigree.Analyze(store, id, generations-1)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return root, report
}
