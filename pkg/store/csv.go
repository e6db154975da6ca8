package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bloodline-tools/bloodline/pkg/cache"
	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// CSV column headers in the bloodline.csv layout. Matching is
// case-insensitive and ignores surrounding whitespace.
const (
	colKey     = "primarykey"
	colSire    = "sire"
	colDam     = "dam"
	colSex     = "sex"
	colColor   = "color"
	colYear    = "year"
	colDetails = "details"
	colURL     = "url"
	colName    = "horse name"
)

// LoadCSV reads a bloodline CSV file. See [ReadCSV] for the format.
func LoadCSV(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	res, err := ReadCSV(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

// ReadCSV parses bloodline records from r. The first row is a header; the
// only required column is PrimaryKey. Rows with an empty PrimaryKey are
// skipped, matching how real exports pad their sheets. A UTF-8 byte order
// mark, present in Excel-authored exports, is tolerated.
func ReadCSV(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return Result{}, err
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols[colKey]; !ok {
		return Result{}, fmt.Errorf("missing required column %q", "PrimaryKey")
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := pedigree.MapStore{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, err
		}

		key := field(row, colKey)
		if key == "" {
			continue
		}
		records.Add(pedigree.Individual{
			ID:     key,
			SireID: field(row, colSire),
			DamID:  field(row, colDam),
			Sex:    pedigree.ParseSex(strings.ToUpper(field(row, colSex))),
			Name:   field(row, colName),
			Year:   field(row, colYear),
			Notes:  joinNotes(field(row, colColor), field(row, colDetails)),
			URL:    field(row, colURL),
		})
	}

	return Result{Store: records, Fingerprint: cache.Hash(data)}, nil
}

func joinNotes(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
