// Package pedigree derives bounded-depth ancestry trees from flat parent-link
// records and detects repeated ancestors (inbreeding) across the tree's paths.
//
// # Overview
//
// Bloodline data is a flat table: each individual carries at most two parent
// identifiers (sire and dam). This package turns that table into the two data
// products every pedigree view needs:
//
//   - a positioned binary ancestry tree, where each node carries a contiguous
//     layout span sized by its subtree's leaf count
//   - an inbreeding report listing every ancestor reachable on two or more
//     distinct paths, with a percentage contribution and branch classification
//
// The package performs no I/O and no formatting: it consumes a [Store] (a
// read-only identifier→record lookup, see pkg/store for loaders) and returns
// plain data structures for pkg/render and other presentation layers.
//
// # Basic Usage
//
// Build a tree, assign spans, and analyze inbreeding:
//
//	gens := pedigree.ClampGenerations(store, "XX001", 5)
//	root, err := pedigree.Build(store, "XX001", gens)
//	if err != nil {
//	    return err
//	}
//	rows := pedigree.AssignSpans(root)
//
//	report, err := pedigree.Analyze(store, "XX001", gens-1)
//
// Note the off-by-one between the two entry points: [Build] takes a
// generation count that includes the subject (generation 0 is the first of
// the count), while [Analyze] takes an ancestor-generation bound that
// excludes it (the subject's parents are generation 1, the deepest visited
// ancestors are generation bound).
//
// # Malformed Data
//
// Real bloodline exports are messy, and none of it is fatal here:
//
//   - a parent identifier with no backing record becomes a placeholder node,
//     preserving the binary tree shape the layout needs
//   - a subject with no record becomes a visible "Unknown" root
//   - cyclic parentage (an individual listed as its own ancestor) is cut by
//     per-path visiting sets in [MaxDepth] and [Analyze]; [Build] needs no
//     guard because its depth is already bounded
//
// Only invalid arguments are reported as errors: [ErrEmptyID],
// [ErrInvalidGenerations], [ErrInvalidBound].
//
// # Percentage Formula
//
// An entry's percentage is the additive coefficient-of-relationship
// contribution, 100 × Σ 0.5^generation over its occurrences. It deliberately
// does not account for the repeated ancestor's own inbreeding coefficient;
// the simple additive figure is what bloodline tables conventionally print,
// and the numbers are part of this package's tested contract.
//
// # Concurrency
//
// Every traversal allocates its own state (memo tables, visiting sets), so
// independent analyses of different subjects may run concurrently against the
// same Store, provided the Store's Lookup is safe for concurrent reads
// ([MapStore] is, since analyses never mutate it).
package pedigree
