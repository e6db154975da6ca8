// Package render turns analyzed pedigrees into visual output.
//
// # Overview
//
// This package contains the rendering side of the pipeline. It consumes the
// tree and report types from [pkg/pedigree] and produces:
//
//   - Row-span HTML tables ([Table]), the classic printed-pedigree layout
//   - Radial wheel SVGs ([Wheel]), one ring per generation
//   - Graphviz node-link diagrams ([ToDOT], [RenderSVG], [RenderPNG])
//   - The one-line inbreeding summary ([Summary]) shared by every format
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The wheel renderer uses
// them for raster export.
//
//	svg := render.Wheel(tree, report, render.WheelOptions{})
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Determinism
//
// Every renderer in this package is deterministic: the same tree and report
// always produce byte-identical output. This is what makes the artifact
// cache in [pkg/cache] sound.
//
// [pkg/pedigree]: github.com/bloodline-tools/bloodline/pkg/pedigree
// [pkg/cache]: github.com/bloodline-tools/bloodline/pkg/cache
package render
