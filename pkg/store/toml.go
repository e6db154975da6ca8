package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bloodline-tools/bloodline/pkg/cache"
	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// herdFile is the TOML herd format:
//
//	[[individual]]
//	id = "XX001"
//	name = "Some Horse"
//	sire = "XX002"
//	dam = "XX003"
//	sex = "M"
//	year = "2015"
//	notes = "bay"
//	url = "https://example.com/XX001"
type herdFile struct {
	Individuals []herdIndividual `toml:"individual"`
}

type herdIndividual struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Sire  string `toml:"sire"`
	Dam   string `toml:"dam"`
	Sex   string `toml:"sex"`
	Year  string `toml:"year"`
	Notes string `toml:"notes"`
	URL   string `toml:"url"`
}

// LoadTOML reads a TOML herd file. See [ReadTOML] for the format.
func LoadTOML(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	res, err := ReadTOML(data)
	if err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

// ReadTOML parses herd records from TOML bytes. Individuals without an id
// are skipped, matching the CSV loader's treatment of keyless rows.
func ReadTOML(data []byte) (Result, error) {
	var herd herdFile
	if err := toml.Unmarshal(data, &herd); err != nil {
		return Result{}, err
	}

	records := pedigree.MapStore{}
	for _, in := range herd.Individuals {
		if strings.TrimSpace(in.ID) == "" {
			continue
		}
		records.Add(pedigree.Individual{
			ID:     strings.TrimSpace(in.ID),
			SireID: strings.TrimSpace(in.Sire),
			DamID:  strings.TrimSpace(in.Dam),
			Sex:    pedigree.ParseSex(strings.ToUpper(strings.TrimSpace(in.Sex))),
			Name:   strings.TrimSpace(in.Name),
			Year:   strings.TrimSpace(in.Year),
			Notes:  strings.TrimSpace(in.Notes),
			URL:    strings.TrimSpace(in.URL),
		})
	}

	return Result{Store: records, Fingerprint: cache.Hash(data)}, nil
}
