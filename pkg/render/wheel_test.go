package render

import (
	"strings"
	"testing"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

func TestWheel(t *testing.T) {
	store := inbredStore()
	root, report := analyzedTree(t, store, "subj", 3)

	out := string(Wheel(root, report, WheelOptions{Summary: Summary(report, store)}))

	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatal("output should be a complete SVG document")
	}
	// Four drawn wedges: f, m, and legend twice. The two placeholder dams
	// are skipped.
	if got := strings.Count(out, "<path"); got != 4 {
		t.Errorf("wedge count = %d, want 4", got)
	}
	// legend repeats through both branches, so both its wedges carry the
	// purple outline
	if got := strings.Count(out, wheelEdgeBoth); got != 2 {
		t.Errorf("outlined wedge count = %d, want 2", got)
	}
	// Sex fills
	if !strings.Contains(out, wheelSireFill) {
		t.Error("male wedges should use the sire fill")
	}
	if !strings.Contains(out, wheelDamFill) {
		t.Error("female wedges should use the dam fill")
	}
	// Title defaults to the subject's name and year
	if !strings.Contains(out, "Subject (JPN) 2018") {
		t.Error("default title missing")
	}
	// Summary under the wheel
	if !strings.Contains(out, "Legend 50.00% 2 x 2") {
		t.Error("summary line missing")
	}
}

func TestWheelBranchOutlineColors(t *testing.T) {
	// Repeat confined to the sire half
	store := pedigree.MapStore{}
	store.Add(pedigree.Individual{ID: "subj", SireID: "f", DamID: "m"})
	store.Add(pedigree.Individual{ID: "f", Sex: pedigree.SexMale, SireID: "ff", DamID: "fm"})
	store.Add(pedigree.Individual{ID: "m", Sex: pedigree.SexFemale})
	store.Add(pedigree.Individual{ID: "ff", Sex: pedigree.SexMale, SireID: "rep"})
	store.Add(pedigree.Individual{ID: "fm", Sex: pedigree.SexFemale, SireID: "rep"})
	store.Add(pedigree.Individual{ID: "rep", Name: "Repeat", Sex: pedigree.SexMale})

	root, report := analyzedTree(t, store, "subj", 4)
	out := string(Wheel(root, report, WheelOptions{}))

	if !strings.Contains(out, wheelEdgeSire) {
		t.Error("sire-side repeat should be outlined in the sire color")
	}
	if strings.Contains(out, wheelEdgeDam) || strings.Contains(out, wheelEdgeBoth) {
		t.Error("no dam-side or both-side outlines expected")
	}
}

func TestWheelDeterministic(t *testing.T) {
	store := inbredStore()
	root, report := analyzedTree(t, store, "subj", 3)

	a := Wheel(root, report, WheelOptions{})
	b := Wheel(root, report, WheelOptions{})
	if string(a) != string(b) {
		t.Error("wheel output should be byte-identical across runs")
	}
}

func TestWheelSingleNode(t *testing.T) {
	store := pedigree.MapStore{}
	store.Add(pedigree.Individual{ID: "solo", Name: "Solo"})

	root, report := analyzedTree(t, store, "solo", 1)
	out := string(Wheel(root, report, WheelOptions{}))

	if strings.Count(out, "<path") != 0 {
		t.Error("a subject with no ancestry should draw no wedges")
	}
	if !strings.Contains(out, "Solo") {
		t.Error("title should still name the subject")
	}
}

func TestWrapSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		width   int
		want    int
	}{
		{"Empty", "", 100, 0},
		{"SingleLine", "A 50.00% 2 x 2", 100, 1},
		{"SplitsBetweenEntries", "A 50.00% 2 x 2 / B 25.00% 3 x 3 / C 12.50% 4 x 4", 20, 3},
		{"NeverSplitsInsideEntry", "one-single-very-long-entry 1.56% 6 x 7", 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(wrapSummary(tt.summary, tt.width)); got != tt.want {
				t.Errorf("line count = %d, want %d", got, tt.want)
			}
		})
	}
}
