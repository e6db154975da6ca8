package render

import (
	"strings"
	"testing"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

func TestToDOT(t *testing.T) {
	store := inbredStore()
	root, report := analyzedTree(t, store, "subj", 3)

	dot := ToDOT(root, report, DOTOptions{})

	if !strings.HasPrefix(dot, "digraph pedigree {") {
		t.Fatal("output should be a digraph")
	}
	// Five drawn positions: subject, both parents, legend twice.
	// Placeholder dams are omitted.
	for _, pos := range []string{`"r" [`, `"rs" [`, `"rd" [`, `"rss" [`, `"rds" [`} {
		if !strings.Contains(dot, pos) {
			t.Errorf("missing node %s", pos)
		}
	}
	if strings.Contains(dot, `"rsd"`) || strings.Contains(dot, `"rdd"`) {
		t.Error("placeholder positions should not appear")
	}
	// Ancestor-to-descendant edges
	for _, edge := range []string{`"rs" -> "r";`, `"rd" -> "r";`, `"rss" -> "rs";`, `"rds" -> "rd";`} {
		if !strings.Contains(dot, edge) {
			t.Errorf("missing edge %s", edge)
		}
	}
	// Both occurrences of the repeated ancestor are outlined
	if got := strings.Count(dot, wheelEdgeBoth); got != 2 {
		t.Errorf("outlined node count = %d, want 2", got)
	}
	// Labels carry name and year
	if !strings.Contains(dot, "Legend (USA) 1995") {
		t.Error("node label should include name and year")
	}
}

func TestToDOTDetailed(t *testing.T) {
	store := inbredStore()
	root, report := analyzedTree(t, store, "subj", 3)

	dot := ToDOT(root, report, DOTOptions{Detailed: true})
	if !strings.Contains(dot, `gen: 2`) {
		t.Error("detailed labels should include the generation")
	}
	if !strings.Contains(dot, "id: legend") {
		t.Error("detailed labels should include the identifier")
	}
}

func TestToDOTSexFills(t *testing.T) {
	store := inbredStore()
	root, report := analyzedTree(t, store, "subj", 3)

	dot := ToDOT(root, report, DOTOptions{})
	if !strings.Contains(dot, `fillcolor="`+wheelSireFill+`"`) {
		t.Error("male nodes should use the sire fill")
	}
	if !strings.Contains(dot, `fillcolor="`+wheelDamFill+`"`) {
		t.Error("female nodes should use the dam fill")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	store := inbredStore()
	root, report := analyzedTree(t, store, "subj", 3)

	a := ToDOT(root, report, DOTOptions{})
	b := ToDOT(root, report, DOTOptions{})
	if a != b {
		t.Error("DOT output should be identical across runs")
	}
}

func TestToDOTDataLimitedTree(t *testing.T) {
	store := pedigree.MapStore{}
	store.Add(pedigree.Individual{ID: "solo", Name: "Solo"})

	root, err := pedigree.Build(store, "solo", 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pedigree.AssignSpans(root)

	dot := ToDOT(root, pedigree.Report{}, DOTOptions{})
	if !strings.Contains(dot, `"r" [`) {
		t.Error("single node should still be emitted")
	}
	if strings.Contains(dot, "->") {
		t.Error("no edges expected for a single node")
	}
}
