package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// DOTOptions configures node-link diagram rendering.
type DOTOptions struct {
	// Detailed includes generation numbers and identifiers in node labels.
	// When false, only the display name and year are shown.
	Detailed bool
}

// ToDOT converts an ancestry tree to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered with [RenderSVG]
// or [RenderPNG].
//
// Nodes are tree positions, not records: an ancestor repeated through
// several lines appears once per line, which is what makes the inbreeding
// visible as converging edges. Positions the report lists as distinct
// repeats are outlined in the same branch colors the wheel uses. Placeholder
// positions are omitted.
func ToDOT(root *pedigree.Node, report pedigree.Report, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pedigree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	outlines := outlineColors(report)
	writeDOTNodes(&buf, root, "r", outlines, opts)

	buf.WriteString("\n")
	writeDOTEdges(&buf, root, "r")

	buf.WriteString("}\n")
	return buf.String()
}

// writeDOTNodes emits one node statement per non-placeholder tree position,
// pre-order. Position identifiers encode the path from the root: "r", "rs"
// for the sire, "rsd" for the sire's dam, and so on.
func writeDOTNodes(buf *bytes.Buffer, n *pedigree.Node, pos string, outlines map[string]string, opts DOTOptions) {
	if n == nil || n.Individual.Placeholder {
		return
	}

	attrs := []string{fmt.Sprintf("label=%q", dotLabel(n, opts.Detailed))}
	attrs = append(attrs, "fillcolor="+strconv.Quote(wheelFill(n.Individual.Sex)))
	if color, ok := outlines[n.Individual.ID]; ok {
		attrs = append(attrs, "color="+strconv.Quote(color), "penwidth=2")
	}
	fmt.Fprintf(buf, "  %q [%s];\n", pos, strings.Join(attrs, ", "))

	writeDOTNodes(buf, n.Sire, pos+"s", outlines, opts)
	writeDOTNodes(buf, n.Dam, pos+"d", outlines, opts)
}

// writeDOTEdges emits ancestor-to-descendant edges so generations rank from
// the oldest at the top down to the subject.
func writeDOTEdges(buf *bytes.Buffer, n *pedigree.Node, pos string) {
	if n == nil {
		return
	}
	if n.Sire != nil && !n.Sire.Individual.Placeholder {
		fmt.Fprintf(buf, "  %q -> %q;\n", pos+"s", pos)
		writeDOTEdges(buf, n.Sire, pos+"s")
	}
	if n.Dam != nil && !n.Dam.Individual.Placeholder {
		fmt.Fprintf(buf, "  %q -> %q;\n", pos+"d", pos)
		writeDOTEdges(buf, n.Dam, pos+"d")
	}
}

func dotLabel(n *pedigree.Node, detailed bool) string {
	label := nameYear(n.Individual)
	if label == "" {
		label = n.Individual.ID
	}
	if detailed {
		label += fmt.Sprintf("\ngen: %d", n.Generation)
		if n.Individual.ID != "" && n.Individual.ID != n.Individual.DisplayName() {
			label += "\nid: " + n.Individual.ID
		}
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
