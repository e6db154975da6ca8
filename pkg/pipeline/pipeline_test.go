package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bloodline-tools/bloodline/pkg/cache"
	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

func testStore() pedigree.MapStore {
	store := pedigree.MapStore{}
	store.Add(pedigree.Individual{ID: "subj", Name: "Subject", Year: "2018", SireID: "f", DamID: "m"})
	store.Add(pedigree.Individual{ID: "f", Name: "Father", Sex: pedigree.SexMale, SireID: "legend"})
	store.Add(pedigree.Individual{ID: "m", Name: "Mother", Sex: pedigree.SexFemale, SireID: "legend"})
	store.Add(pedigree.Individual{ID: "legend", Name: "Legend", Sex: pedigree.SexMale})
	return store
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"table", false},
		{"wheel", false},
		{"graph", false},
		{"invalid", true},
		{"Table", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		vizType string
		format  string
		wantErr bool
	}{
		{"table", "html", false},
		{"table", "json", false},
		{"table", "svg", true},
		{"wheel", "svg", false},
		{"wheel", "png", false},
		{"wheel", "html", true},
		{"graph", "dot", false},
		{"graph", "svg", false},
		{"graph", "html", true},
		{"table", "", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.vizType, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.vizType, tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Subject: "subj"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Generations != DefaultGenerations {
		t.Errorf("Generations = %d, want %d", opts.Generations, DefaultGenerations)
	}
	if opts.VizType != VizTable {
		t.Errorf("VizType = %q, want %q", opts.VizType, VizTable)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatHTML {
		t.Errorf("Formats = %v, want [html]", opts.Formats)
	}
	if opts.WheelSize != DefaultWheelSize {
		t.Errorf("WheelSize = %d, want %d", opts.WheelSize, DefaultWheelSize)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"MissingSubject", Options{}},
		{"NegativeGenerations", Options{Subject: "x", Generations: -1}},
		{"BadVizType", Options{Subject: "x", VizType: "pie"}},
		{"FormatVizMismatch", Options{Subject: "x", VizType: "wheel", Formats: []string{"html"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExecuteTable(t *testing.T) {
	runner := NewRunner(testStore(), "fp", nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Subject: "subj", Generations: 3})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.Stats.Generations != 3 {
		t.Errorf("Generations = %d, want 3", result.Stats.Generations)
	}
	if result.Stats.Rows != 4 {
		t.Errorf("Rows = %d, want 4", result.Stats.Rows)
	}
	if result.Stats.RepeatedAncestors != 1 {
		t.Errorf("RepeatedAncestors = %d, want 1", result.Stats.RepeatedAncestors)
	}
	if result.Summary != "Legend 50.00% 2 x 2" {
		t.Errorf("Summary = %q", result.Summary)
	}

	html := string(result.Artifacts["html"])
	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Error("html artifact should be a complete page")
	}
	if !strings.Contains(html, "Legend 50.00% 2 x 2") {
		t.Error("html artifact should carry the summary")
	}
}

func TestExecuteClampsGenerations(t *testing.T) {
	runner := NewRunner(testStore(), "fp", nil, nil)
	defer runner.Close()

	// Only two generations of ancestry exist
	result, err := runner.Execute(context.Background(), Options{Subject: "subj", Generations: 50})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.Generations != 3 {
		t.Errorf("Generations = %d, want 3 after clamping", result.Stats.Generations)
	}
}

func TestExecuteJSONReport(t *testing.T) {
	runner := NewRunner(testStore(), "fp", nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Subject: "subj",
		VizType: VizTable,
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var report ReportJSON
	if err := json.Unmarshal(result.Artifacts["json"], &report); err != nil {
		t.Fatalf("unmarshal json artifact: %v", err)
	}
	if report.Subject != "subj" {
		t.Errorf("Subject = %q", report.Subject)
	}
	if len(report.Entries) != 1 {
		t.Fatalf("Entries = %d, want 1", len(report.Entries))
	}
	e := report.Entries[0]
	if e.ID != "legend" || e.Name != "Legend" || e.Percentage != 50.0 || e.Branch != "both" || e.Subsumed {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestExecuteGraphDOT(t *testing.T) {
	runner := NewRunner(testStore(), "fp", nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Subject: "subj",
		VizType: VizGraph,
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(string(result.Artifacts["dot"]), "digraph pedigree {") {
		t.Error("dot artifact should be a digraph")
	}
}

func TestExecuteWheelSVG(t *testing.T) {
	runner := NewRunner(testStore(), "fp", nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Subject: "subj",
		VizType: VizWheel,
		Formats: []string{FormatSVG},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(string(result.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact should be an SVG document")
	}
}

func TestExecuteUsesArtifactCache(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(testStore(), "fp", fileCache, nil)
	defer runner.Close()

	opts := Options{Subject: "subj", Generations: 3}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), Options{Subject: "subj", Generations: 3})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should be served from cache")
	}
	if string(first.Artifacts["html"]) != string(second.Artifacts["html"]) {
		t.Error("cached artifact should match the rendered one")
	}

	// Refresh bypasses the cache
	third, err := runner.Execute(context.Background(), Options{Subject: "subj", Generations: 3, Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteFingerprintScopesCache(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer fileCache.Close()

	a := NewRunner(testStore(), "fp-a", fileCache, nil)
	b := NewRunner(testStore(), "fp-b", fileCache, nil)

	if _, err := a.Execute(context.Background(), Options{Subject: "subj"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	result, err := b.Execute(context.Background(), Options{Subject: "subj"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.RenderHit {
		t.Error("a different fingerprint must not share cached artifacts")
	}
}

func TestExecuteRenderOptionsScopeCache(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(testStore(), "fp", fileCache, nil)
	defer runner.Close()

	t.Run("wheel size", func(t *testing.T) {
		if _, err := runner.Execute(context.Background(), Options{Subject: "subj", VizType: VizWheel}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		small, err := runner.Execute(context.Background(), Options{Subject: "subj", VizType: VizWheel, WheelSize: 300})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if small.CacheInfo.RenderHit {
			t.Error("a different wheel size must not be served from cache")
		}
		// 300px wheel plus the 20px margin on each side
		if !strings.Contains(string(small.Artifacts[FormatSVG]), `width="340"`) {
			t.Error("artifact should be rendered at the requested size")
		}
	})

	t.Run("no summary", func(t *testing.T) {
		if _, err := runner.Execute(context.Background(), Options{Subject: "subj"}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		bare, err := runner.Execute(context.Background(), Options{Subject: "subj", NoSummary: true})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if bare.CacheInfo.RenderHit {
			t.Error("suppressing the summary must not be served from cache")
		}
		if strings.Contains(string(bare.Artifacts[FormatHTML]), `class="summary"`) {
			t.Error("artifact should omit the summary line")
		}
	})
}

func TestExecuteUnknownSubject(t *testing.T) {
	runner := NewRunner(testStore(), "fp", nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Subject: "nobody"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.Generations != 1 {
		t.Errorf("Generations = %d, want 1", result.Stats.Generations)
	}
	if !strings.Contains(string(result.Artifacts["html"]), "Unknown") {
		t.Error("unknown subject should still render visibly")
	}
}
