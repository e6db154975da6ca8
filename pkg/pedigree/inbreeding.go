package pedigree

import (
	"math"
	"slices"
	"strings"
)

// Branch labels which top-level side of the pedigree reached an ancestor.
type Branch string

const (
	// BranchSire marks ancestors reached only through the subject's sire.
	BranchSire Branch = "sire"
	// BranchDam marks ancestors reached only through the subject's dam.
	BranchDam Branch = "dam"
	// BranchBoth marks ancestors reached through both the sire and the dam
	// side, the pattern that contributes to the inbreeding percentage.
	BranchBoth Branch = "both"
)

// Entry describes one repeated ancestor found by [Analyze].
type Entry struct {
	// ID is the ancestor's identifier.
	ID string

	// Generations holds the generation depth of every occurrence, sorted
	// descending (deepest first, matching the conventional "4 x 3" reading
	// when reversed for display).
	Generations []int

	// Percentage is the additive coefficient-of-relationship contribution:
	// 100 × Σ 0.5^generation, one term per distinct path. It deliberately
	// ignores the ancestor's own inbreeding; see package docs.
	Percentage float64

	// Paths holds every distinct branch-root-to-ancestor identifier path
	// that reached this ancestor, in traversal order.
	Paths [][]string

	// Branch classifies which top-level side(s) reached the ancestor.
	Branch Branch
}

// Report is the result of one inbreeding analysis. Entries is the full map of
// every ancestor with two or more occurrences; Subsumed names the subset whose
// recurrence is entirely explained by a closer repeated ancestor. Presentation
// layers choose between [Report.All] and [Report.Distinct].
type Report struct {
	Entries  map[string]Entry
	Subsumed map[string]bool
}

// IsSubsumed reports whether the ancestor is present in Entries but dropped
// from the distinct view.
func (r Report) IsSubsumed(id string) bool { return r.Subsumed[id] }

// All returns every entry, including subsumed ones, sorted by descending
// percentage with identifier as the tie-break.
func (r Report) All() []Entry {
	entries := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries
}

// Distinct returns the non-subsumed entries, sorted by descending percentage
// with identifier as the tie-break. This is the view most reports want: the
// deepest ancestors that independently explain the recurrence.
func (r Report) Distinct() []Entry {
	entries := make([]Entry, 0, len(r.Entries))
	for id, e := range r.Entries {
		if !r.Subsumed[id] {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Percentage != b.Percentage {
			if a.Percentage > b.Percentage {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Analyze walks the ancestor graph of the individual identified by id, up to
// bound generations beyond the subject, and reports every ancestor reached on
// two or more distinct paths. The subject itself is generation 0 and never
// part of the report; its sire and dam are generation 1.
//
// The two top-level branches are walked separately so each entry can be
// classified as sire-side, dam-side, or both. A per-path visiting set refuses
// to re-enter an identifier already on the current path, which bounds the
// walk on cyclic data at the cost of under-counting occurrences reachable
// only through the cycle.
//
// Analyze returns [ErrEmptyID] if id is empty and [ErrInvalidBound] if bound
// is negative. A subject with no record yields an empty report. The returned
// Report is complete and self-consistent. Invalid arguments are rejected
// before any traversal begins.
func Analyze(store Store, id string, bound int) (Report, error) {
	if id == "" {
		return Report{}, ErrEmptyID
	}
	if bound < 0 {
		return Report{}, ErrInvalidBound
	}

	w := inbreedingWalker{
		store:       store,
		bound:       bound,
		occurrences: make(map[string][]occurrence),
	}
	if rec, ok := store.Lookup(id); ok {
		if rec.SireID != "" {
			w.walk(rec.SireID, 1, nil, make(map[string]struct{}), BranchSire)
		}
		if rec.DamID != "" {
			w.walk(rec.DamID, 1, nil, make(map[string]struct{}), BranchDam)
		}
	}

	report := Report{
		Entries:  w.aggregate(),
		Subsumed: make(map[string]bool),
	}
	markSubsumed(report)
	return report, nil
}

// occurrence records one visit of an identifier during the branch walks.
type occurrence struct {
	gen    int
	path   []string
	branch Branch
}

// inbreedingWalker carries the traversal state for one Analyze call; it is
// never shared across calls.
type inbreedingWalker struct {
	store       Store
	bound       int
	occurrences map[string][]occurrence
}

func (w *inbreedingWalker) walk(id string, gen int, path []string, visiting map[string]struct{}, branch Branch) {
	if gen > w.bound {
		return
	}
	if _, onPath := visiting[id]; onPath {
		return // cyclic parentage: the repeated edge is treated as absent
	}
	visiting[id] = struct{}{}
	defer delete(visiting, id)

	current := make([]string, len(path), len(path)+1)
	copy(current, path)
	current = append(current, id)
	w.occurrences[id] = append(w.occurrences[id], occurrence{gen: gen, path: current, branch: branch})

	rec, ok := w.store.Lookup(id)
	if !ok || gen >= w.bound {
		return
	}
	if rec.SireID != "" {
		w.walk(rec.SireID, gen+1, current, visiting, branch)
	}
	if rec.DamID != "" {
		w.walk(rec.DamID, gen+1, current, visiting, branch)
	}
}

func (w *inbreedingWalker) aggregate() map[string]Entry {
	entries := make(map[string]Entry)
	for id, occs := range w.occurrences {
		if len(occs) < 2 {
			continue
		}

		gens := make([]int, len(occs))
		paths := make([][]string, len(occs))
		pct := 0.0
		sawSire, sawDam := false, false
		for i, occ := range occs {
			gens[i] = occ.gen
			paths[i] = occ.path
			pct += math.Pow(0.5, float64(occ.gen))
			switch occ.branch {
			case BranchSire:
				sawSire = true
			case BranchDam:
				sawDam = true
			}
		}
		slices.SortFunc(gens, func(a, b int) int { return b - a })

		branch := BranchBoth
		switch {
		case sawSire && !sawDam:
			branch = BranchSire
		case sawDam && !sawSire:
			branch = BranchDam
		}

		entries[id] = Entry{
			ID:          id,
			Generations: gens,
			Percentage:  pct * 100.0,
			Paths:       paths,
			Branch:      branch,
		}
	}
	return entries
}

// markSubsumed fills report.Subsumed. An ancestor A is subsumed by B when
// every recorded path to A also contains B at or before A's own position,
// B is then a closer repeated ancestor through which all of A's recurrence is
// already explained.
//
// When A and B mutually subsume each other, the one with the shallower
// minimum generation survives; on a tie the lexicographically smaller
// identifier survives. Candidates are checked in sorted order so the result
// never depends on map iteration.
func markSubsumed(report Report) {
	candidates := make([]string, 0, len(report.Entries))
	for id := range report.Entries {
		candidates = append(candidates, id)
	}
	slices.Sort(candidates)

	for _, a := range candidates {
		for _, b := range candidates {
			if a == b || !subsumedBy(report.Entries[a], b) {
				continue
			}
			if subsumedBy(report.Entries[b], a) && !losesTieBreak(report.Entries[a], report.Entries[b]) {
				continue
			}
			report.Subsumed[a] = true
			break
		}
	}
}

func subsumedBy(a Entry, b string) bool {
	for _, path := range a.Paths {
		pos := slices.Index(path, b)
		if pos < 0 || pos > slices.Index(path, a.ID) {
			return false
		}
	}
	return true
}

// losesTieBreak decides the mutual-subsumption case: a is dropped when b sits
// at a shallower minimum generation, or at an equal one with a smaller ID.
func losesTieBreak(a, b Entry) bool {
	// Generations are sorted descending, so the minimum is last.
	minA := a.Generations[len(a.Generations)-1]
	minB := b.Generations[len(b.Generations)-1]
	if minA != minB {
		return minA > minB
	}
	return a.ID > b.ID
}
