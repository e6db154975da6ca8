package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

const sampleCSV = `PrimaryKey,Sire,Dam,Sex,Color,Year,Details,URL,Horse Name
XX001,XX002,XX003,H,bay,2015,stakes winner,https://example.com/XX001,Subject Horse
XX002,,,H,,2008,,,Father Horse
XX003,,,M,chestnut,2010,,,Mother Horse
,,,,,,,,"padding row"
`

func TestReadCSV(t *testing.T) {
	res, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if len(res.Store) != 3 {
		t.Fatalf("records = %d, want 3 (keyless row skipped)", len(res.Store))
	}
	if res.Fingerprint == "" {
		t.Error("fingerprint must not be empty")
	}

	subj, ok := res.Store.Lookup("XX001")
	if !ok {
		t.Fatal("XX001 missing")
	}
	if subj.SireID != "XX002" || subj.DamID != "XX003" {
		t.Errorf("parents = %q/%q, want XX002/XX003", subj.SireID, subj.DamID)
	}
	if subj.Sex != pedigree.SexMale {
		t.Errorf("sex = %v, want male", subj.Sex)
	}
	if subj.Name != "Subject Horse" || subj.Year != "2015" {
		t.Errorf("name/year = %q/%q", subj.Name, subj.Year)
	}
	if subj.Notes != "bay stakes winner" {
		t.Errorf("notes = %q, want color and details joined", subj.Notes)
	}

	dam, _ := res.Store.Lookup("XX003")
	if dam.Sex != pedigree.SexFemale {
		t.Errorf("dam sex = %v, want female", dam.Sex)
	}
}

func TestReadCSVByteOrderMark(t *testing.T) {
	res, err := ReadCSV(strings.NewReader("\xef\xbb\xbf" + sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if _, ok := res.Store.Lookup("XX001"); !ok {
		t.Error("BOM-prefixed header must still match PrimaryKey")
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"MissingKeyColumn", "Name,Sire\nfoo,bar\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.input)); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

const sampleTOML = `
[[individual]]
id = "XX001"
name = "Subject Horse"
sire = "XX002"
dam = "XX003"
sex = "H"
year = "2015"

[[individual]]
id = "XX002"
sex = "H"

[[individual]]
id = ""
name = "keyless, skipped"
`

func TestReadTOML(t *testing.T) {
	res, err := ReadTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}

	if len(res.Store) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Store))
	}
	subj, ok := res.Store.Lookup("XX001")
	if !ok {
		t.Fatal("XX001 missing")
	}
	if subj.SireID != "XX002" || subj.Sex != pedigree.SexMale || subj.Year != "2015" {
		t.Errorf("unexpected record: %+v", subj)
	}
}

func TestReadTOMLInvalid(t *testing.T) {
	if _, err := ReadTOML([]byte("[[individual]\nbroken")); err == nil {
		t.Error("want parse error, got nil")
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "herd.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(dir, "herd.toml")
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0644); err != nil {
		t.Fatal(err)
	}

	csvRes, err := Load(csvPath)
	if err != nil {
		t.Fatalf("Load csv: %v", err)
	}
	if len(csvRes.Store) != 3 {
		t.Errorf("csv records = %d, want 3", len(csvRes.Store))
	}

	tomlRes, err := Load(tomlPath)
	if err != nil {
		t.Fatalf("Load toml: %v", err)
	}
	if len(tomlRes.Store) != 2 {
		t.Errorf("toml records = %d, want 2", len(tomlRes.Store))
	}

	if _, err := Load(filepath.Join(dir, "herd.xlsx")); err == nil {
		t.Error("unsupported extension must error")
	}
}

func TestFingerprintStability(t *testing.T) {
	a, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint != b.Fingerprint {
		t.Error("identical input must fingerprint identically")
	}

	c, err := ReadCSV(strings.NewReader(sampleCSV + "XX004,,,M,,,,,Extra\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Fingerprint == a.Fingerprint {
		t.Error("different input must fingerprint differently")
	}

	if got := fingerprintRecords(a.Store); got != fingerprintRecords(b.Store) {
		t.Error("record fingerprint must be deterministic")
	}
}
