package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/bloodline-tools/bloodline/pkg/cache"
	"github.com/bloodline-tools/bloodline/pkg/pedigree"
	"github.com/bloodline-tools/bloodline/pkg/render"
)

// Runner encapsulates pipeline execution over one loaded record store,
// with artifact caching. Both the CLI and the HTTP server use this to
// avoid duplicating caching logic.
//
// The Runner is stateless except for the store, cache, and logger - it does
// not keep pipeline results. Multiple goroutines can safely share one
// Runner with different options.
type Runner struct {
	Records     pedigree.Store
	Fingerprint string
	Cache       cache.Cache
	Logger      *log.Logger
}

// NewRunner creates a runner over the given records. fingerprint identifies
// the record source content and scopes every cache key, so a changed file
// never serves stale artifacts. If c is nil, a NullCache is used (caching
// disabled). If logger is nil, the default logger is used.
func NewRunner(records pedigree.Store, fingerprint string, c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Records:     records,
		Fingerprint: fingerprint,
		Cache:       c,
		Logger:      logger,
	}
}

// Execute runs the complete build → analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run_id", result.RunID, "subject", opts.Subject)

	// Clamp the requested depth to the ancestry actually recorded. The
	// analyzer counts generations from the parents, so its bound is one
	// less than the tree's generation count.
	bound := pedigree.ClampGenerations(r.Records, opts.Subject, opts.Generations-1)
	generations := bound + 1
	result.Stats.Generations = generations

	// Stage 1: Build
	buildStart := time.Now()
	tree, err := pedigree.Build(r.Records, opts.Subject, generations)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.Rows = pedigree.AssignSpans(tree)
	result.Tree = tree
	result.Stats.BuildTime = time.Since(buildStart)

	logger.Info("built ancestry tree",
		"generations", generations,
		"rows", result.Stats.Rows,
		"duration", result.Stats.BuildTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	report, err := pedigree.Analyze(r.Records, opts.Subject, bound)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Report = report
	result.Summary = render.Summary(report, r.Records)
	result.Stats.RepeatedAncestors = len(report.Distinct())
	result.Stats.AnalyzeTime = time.Since(analyzeStart)

	logger.Info("analyzed inbreeding",
		"repeated", result.Stats.RepeatedAncestors,
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCache(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"viz", opts.VizType,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderWithCache serves every requested format from the artifact cache when
// possible and renders the rest. Keys cover the record fingerprint, subject,
// effective generation count, visualization type, format, and the render
// options that change the bytes.
func (r *Runner) renderWithCache(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte)
	hits := 0

	for _, format := range opts.Formats {
		key := r.artifactKey(result, opts, format)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				hits++
				continue
			}
		}

		data, err := r.renderFormat(result, opts, format)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		_ = r.Cache.Set(ctx, key, data, cache.DefaultTTL)
	}

	return artifacts, hits == len(opts.Formats), nil
}

func (r *Runner) artifactKey(result *Result, opts Options, format string) string {
	if format == FormatJSON {
		return cache.ReportKey(r.Fingerprint, opts.Subject, result.Stats.Generations-1)
	}
	return cache.ArtifactKey(r.Fingerprint, opts.Subject, result.Stats.Generations, opts.VizType, format,
		opts.WheelSize, opts.NoSummary, opts.Detailed)
}

// renderFormat dispatches one format to the matching renderer.
func (r *Runner) renderFormat(result *Result, opts Options, format string) ([]byte, error) {
	summary := result.Summary
	if opts.NoSummary {
		summary = ""
	}

	switch {
	case format == FormatJSON:
		report := NewReportJSON(opts.Subject, result.Stats.Generations, result.Report, r.Records)
		return report.Marshal()

	case opts.VizType == VizTable:
		return render.Table(result.Tree, result.Stats.Generations, render.TableOptions{Summary: summary}), nil

	case opts.VizType == VizWheel:
		svg := render.Wheel(result.Tree, result.Report, render.WheelOptions{
			Size:    opts.WheelSize,
			Summary: summary,
		})
		if format == FormatPNG {
			return render.ToPNG(svg, 2.0)
		}
		return svg, nil

	case opts.VizType == VizGraph:
		dot := render.ToDOT(result.Tree, result.Report, render.DOTOptions{Detailed: opts.Detailed})
		switch format {
		case FormatDOT:
			return []byte(dot), nil
		case FormatPNG:
			return render.RenderPNG(dot, 2.0)
		default:
			return render.RenderSVG(dot)
		}
	}

	return nil, fmt.Errorf("no renderer for %s/%s", opts.VizType, format)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
