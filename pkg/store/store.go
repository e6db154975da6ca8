// Package store loads pedigree records from external sources into the
// in-memory [pedigree.MapStore] the analysis engine consumes.
//
// Three sources are supported:
//
//   - CSV files in the bloodline.csv column layout ([LoadCSV])
//   - TOML herd files with [[individual]] tables ([LoadTOML])
//   - MongoDB collections ([LoadMongo])
//
// Every loader fully materializes the records before returning, so the
// analysis itself never touches I/O. Loaders also produce a fingerprint of
// the source content; the pipeline uses it to key the artifact cache, so two
// runs over identical data share cached renderings.
package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bloodline-tools/bloodline/pkg/cache"
	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// Result is a loaded record set plus the fingerprint of its source.
type Result struct {
	// Store holds every record keyed by identifier.
	Store pedigree.MapStore

	// Fingerprint is a SHA-256 over the source content. Identical sources
	// yield identical fingerprints regardless of where they were read from.
	Fingerprint string
}

// Load reads the file at path, picking the loader by extension:
// .csv for [LoadCSV], .toml for [LoadTOML].
func Load(path string) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".toml":
		return LoadTOML(path)
	default:
		return Result{}, fmt.Errorf("unsupported record file: %s", filepath.Base(path))
	}
}

// fingerprintRecords derives a fingerprint from record content rather than
// raw bytes, for sources without a canonical byte form (MongoDB).
func fingerprintRecords(s pedigree.MapStore) string {
	ids := s.IDs()
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		rec := s[id]
		fmt.Fprintf(&b, "%s|%s|%s|%d|%s|%s|%s|%s\n",
			rec.ID, rec.SireID, rec.DamID, rec.Sex, rec.Name, rec.Year, rec.Notes, rec.URL)
	}
	return cache.Hash([]byte(b.String()))
}
