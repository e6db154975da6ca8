package pedigree

import "errors"

var (
	// ErrEmptyID is returned by [Build] and [Analyze] when the subject
	// identifier is empty. Every individual must have a non-empty ID.
	ErrEmptyID = errors.New("identifier must not be empty")

	// ErrInvalidGenerations is returned by [Build] when the generation count
	// is less than 1. The subject itself occupies generation 0, so a valid
	// tree always has at least one generation.
	ErrInvalidGenerations = errors.New("generations must be at least 1")

	// ErrInvalidBound is returned by [Analyze] when the ancestor-generation
	// bound is negative. A bound of 0 is valid and yields an empty report.
	ErrInvalidBound = errors.New("generation bound must not be negative")
)

// Sex is the recorded sex of an individual. It only affects presentation
// (cell and wedge coloring); the analysis itself never branches on it.
type Sex int

const (
	// SexUnknown is the zero value, used when the source data has no sex
	// column or an unrecognized value.
	SexUnknown Sex = iota
	// SexMale covers the sire-capable codes (M is reserved for mare in some
	// exports, so see ParseSex for the actual mapping).
	SexMale
	// SexFemale covers dam-capable codes.
	SexFemale
)

// String returns "male", "female", or "unknown".
func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ParseSex maps the single-letter codes found in bloodline exports to a Sex.
// Horse data uses H (horse), C (colt), and G (gelding) for males and M (mare)
// and F (filly) for females. Anything else, including the empty string, is
// SexUnknown.
func ParseSex(code string) Sex {
	switch code {
	case "H", "C", "G":
		return SexMale
	case "M", "F":
		return SexFemale
	default:
		return SexUnknown
	}
}

// Individual is one record in the pedigree data. Records are immutable once
// loaded; the analysis only ever reads them.
//
// SireID and DamID are identifiers, not object references. They may be empty
// (parent unrecorded) or dangling (parent named but absent from the store).
// Both cases are normal in real bloodline data and are absorbed by the tree
// builder rather than reported as errors.
type Individual struct {
	ID     string // Unique, non-empty identifier (primary key)
	SireID string // Paternal parent identifier, may be empty
	DamID  string // Maternal parent identifier, may be empty
	Sex    Sex

	// Display metadata, passed through untouched to renderers.
	Name  string
	Year  string
	Notes string
	URL   string

	// Placeholder marks a synthetic individual substituted for a missing
	// ancestor record to keep the tree binary. Placeholders have no ID.
	Placeholder bool
}

// DisplayName returns the name if set, otherwise the identifier.
// Placeholders return the empty string.
func (in Individual) DisplayName() string {
	if in.Placeholder {
		return ""
	}
	if in.Name != "" {
		return in.Name
	}
	return in.ID
}

// Placeholder returns the synthetic individual substituted for a missing
// ancestor record. All fields are blank; renderers show an empty cell.
func Placeholder() Individual {
	return Individual{Placeholder: true}
}

// UnknownRoot returns the individual used when the subject itself has no
// record. Unlike a placeholder it keeps the requested identifier and carries
// a visible label, so the missing subject is reported rather than blanked.
func UnknownRoot(id string) Individual {
	return Individual{ID: id, Name: "Unknown"}
}

// Store is the read-only record lookup capability the analysis consumes.
// Implementations must be fully materialized: Lookup never blocks on I/O.
//
// A Store is only read during an analysis call, so a single Store may back
// concurrent analyses as long as Lookup itself is safe for concurrent use
// (MapStore is, since analyses never mutate it).
type Store interface {
	// Lookup returns the record for id and true, or the zero Individual and
	// false when no record exists.
	Lookup(id string) (Individual, bool)
}

// MapStore is the standard in-memory Store. Loaders in pkg/store produce it;
// tests build it directly.
type MapStore map[string]Individual

// Lookup implements [Store].
func (m MapStore) Lookup(id string) (Individual, bool) {
	in, ok := m[id]
	return in, ok
}

// Add inserts a record keyed by its ID. Records with an empty ID are
// silently dropped, matching how loaders skip keyless rows.
func (m MapStore) Add(in Individual) {
	if in.ID == "" {
		return
	}
	m[in.ID] = in
}

// IDs returns all record identifiers in unspecified order.
func (m MapStore) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}
