// Package pipeline provides the core analysis pipeline for Bloodline.
//
// This package implements the complete build → analyze → render pipeline
// shared by the CLI and the HTTP server. Centralizing it keeps behavior
// consistent across entry points and puts the artifact caching in one place.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: expand the subject's ancestry tree and assign layout spans
//  2. Analyze: find repeated ancestors and their blood contribution
//  3. Render: generate output in the requested visualization and formats
//
// # Usage
//
// Create a Runner over a loaded record store and execute the pipeline:
//
//	runner := pipeline.NewRunner(records, fingerprint, cache, logger)
//	opts := pipeline.Options{
//	    Subject: "secretariat",
//	    VizType: pipeline.VizWheel,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// DefaultGenerations is the generation count used when none is requested.
// The count includes the subject, so the default covers the subject plus
// four generations of ancestors, the classic printed-pedigree depth.
const DefaultGenerations = 5

// Visualization types.
const (
	VizTable = "table"
	VizWheel = "wheel"
	VizGraph = "graph"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// DefaultWheelSize is the default wheel diameter in pixels.
const DefaultWheelSize = 900

// vizFormats maps each visualization type to the formats it can produce.
// The first entry is the default.
var vizFormats = map[string][]string{
	VizTable: {FormatHTML, FormatJSON},
	VizWheel: {FormatSVG, FormatPNG, FormatJSON},
	VizGraph: {FormatSVG, FormatDOT, FormatPNG, FormatJSON},
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Subject is the identifier of the individual to analyze. Required.
	Subject string `json:"subject"`

	// Generations is the total tree depth including the subject. Zero
	// means [DefaultGenerations]. The value is clamped to the ancestry
	// actually present in the records, so oversized requests are safe.
	Generations int `json:"generations,omitempty"`

	// VizType selects the visualization: table, wheel, or graph.
	VizType string `json:"viz_type,omitempty"`

	// Formats lists the output formats to produce. Valid formats depend
	// on the visualization type; empty selects its default.
	Formats []string `json:"formats,omitempty"`

	// WheelSize is the wheel diameter in pixels. Zero means [DefaultWheelSize].
	WheelSize int `json:"wheel_size,omitempty"`

	// Detailed includes identifiers and generation numbers in graph labels.
	Detailed bool `json:"detailed,omitempty"`

	// NoSummary suppresses the inbreeding summary line in table and wheel
	// output.
	NoSummary bool `json:"no_summary,omitempty"`

	// Refresh bypasses the artifact cache and re-renders.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs.
	RunID string

	// Tree is the expanded ancestry tree with spans assigned.
	Tree *pedigree.Node

	// Report is the inbreeding analysis.
	Report pedigree.Report

	// Summary is the one-line inbreeding summary.
	Summary string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	// Generations is the effective tree depth after clamping.
	Generations int

	// Rows is the number of leaf rows in the layout.
	Rows int

	// RepeatedAncestors counts the report's distinct entries.
	RepeatedAncestors int

	BuildTime   time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache usage for the render stage.
type CacheInfo struct {
	// RenderHit is true when every requested artifact came from cache.
	RenderHit bool
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if _, ok := vizFormats[vizType]; !ok {
		return fmt.Errorf("invalid viz_type: %q (must be one of: table, wheel, graph)", vizType)
	}
	return nil
}

// ValidateFormat checks that a format is valid for the visualization type.
func ValidateFormat(vizType, format string) error {
	if !slices.Contains(vizFormats[vizType], format) {
		return fmt.Errorf("invalid format %q for %s (must be one of: %v)", format, vizType, vizFormats[vizType])
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if o.Generations < 0 {
		return fmt.Errorf("generations must be positive")
	}

	if o.Generations == 0 {
		o.Generations = DefaultGenerations
	}
	if o.VizType == "" {
		o.VizType = VizTable
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{vizFormats[o.VizType][0]}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(o.VizType, f); err != nil {
			return err
		}
	}
	if o.WheelSize == 0 {
		o.WheelSize = DefaultWheelSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}
