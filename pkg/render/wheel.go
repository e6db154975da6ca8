package render

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// Wheel palette. Fills follow sex, outlines mark repeated ancestors by the
// side of the pedigree that reaches them.
const (
	wheelSireFill    = "#DDEBF7"
	wheelDamFill     = "#FCE4EC"
	wheelUnknownFill = "#F2F2F2"
	wheelEdge        = "#FFFFFF"
	wheelEdgeSire    = "#1F4E9E"
	wheelEdgeDam     = "#FF0000"
	wheelEdgeBoth    = "#800080"
)

// WheelOptions configures wheel rendering.
type WheelOptions struct {
	// Size is the wheel diameter in pixels. Zero means 900.
	Size int

	// Title overrides the center title. When empty it is derived from the
	// subject's name and year.
	Title string

	// Summary is the inbreeding summary printed under the wheel.
	// Empty omits it.
	Summary string
}

// Wheel renders the tree as a radial pedigree chart: one ring per
// generation, the sire half on the left (90° through 270°) and the dam half
// on the right. Each wedge splits its angular range at the midpoint for its
// parents, so an ancestor's sector always sits outside its descendant's.
// Wedge fill follows sex; ancestors the report lists as distinct repeats are
// outlined in a branch-dependent color. Placeholder positions are left
// blank.
//
// Output is deterministic for a given tree and report.
func Wheel(root *pedigree.Node, report pedigree.Report, opts WheelOptions) []byte {
	size := opts.Size
	if size <= 0 {
		size = 900
	}
	title := opts.Title
	if title == "" {
		title = nameYear(root.Individual)
	}

	maxGen := treeDepth(root)

	w := wheelRenderer{
		radius:   float64(size) / 2,
		maxGen:   maxGen,
		outlines: outlineColors(report),
	}
	w.cx = float64(size)/2 + wheelMargin
	w.cy = wheelHeader + float64(size)/2

	summaryLines := wrapSummary(opts.Summary, 100)
	width := float64(size) + 2*wheelMargin
	height := wheelHeader + float64(size) + wheelFooter + float64(len(summaryLines))*18

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %.0f %.0f\" width=\"%.0f\" height=\"%.0f\">\n", width, height, width, height)
	fmt.Fprintf(&b, "  <rect width=\"%.0f\" height=\"%.0f\" fill=\"white\"/>\n", width, height)
	fmt.Fprintf(&b, "  <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-size=\"20\" font-weight=\"bold\" font-family=\"sans-serif\">%s</text>\n",
		w.cx, wheelHeader-16, html.EscapeString(title))

	// Sire half sweeps the left semicircle, dam half the right.
	if root.Sire != nil {
		w.wedge(&b, root.Sire, math.Pi/2, 3*math.Pi/2)
	}
	if root.Dam != nil {
		w.wedge(&b, root.Dam, -math.Pi/2, math.Pi/2)
	}

	for i, line := range summaryLines {
		fmt.Fprintf(&b, "  <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-size=\"14\" font-family=\"sans-serif\" fill=\"#444\">%s</text>\n",
			w.cx, wheelHeader+float64(size)+28+float64(i)*18, html.EscapeString(line))
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

const (
	wheelMargin = 20.0
	wheelHeader = 48.0
	wheelFooter = 20.0
)

type wheelRenderer struct {
	cx, cy   float64
	radius   float64
	maxGen   int
	outlines map[string]string
}

// wedge draws the node's annular sector and recurses into its parents,
// splitting the angular range at the midpoint. Angles are mathematical
// radians, counter-clockwise from the positive x axis.
func (w *wheelRenderer) wedge(b *strings.Builder, n *pedigree.Node, a0, a1 float64) {
	if n == nil || n.Individual.Placeholder {
		return
	}

	gen := n.Generation
	r0 := w.ringRadius(gen - 1)
	r1 := w.ringRadius(gen)

	stroke, strokeWidth := wheelEdge, 0.8
	if color, ok := w.outlines[n.Individual.ID]; ok {
		stroke, strokeWidth = color, 2.0
	}
	fmt.Fprintf(b, "  <path d=%q fill=%q stroke=%q stroke-width=\"%.1f\"/>\n",
		w.sectorPath(r0, r1, a0, a1), wheelFill(n.Individual.Sex), stroke, strokeWidth)

	w.label(b, n, r0, r1, a0, a1)

	if n.Sire == nil && n.Dam == nil {
		return
	}
	mid := (a0 + a1) / 2
	w.wedge(b, n.Sire, mid, a1)
	w.wedge(b, n.Dam, a0, mid)
}

// ringRadius returns the outer radius of the given generation's ring in
// pixels. Beyond generation seven the rings widen slightly so deep labels
// keep legible arc length.
func (w *wheelRenderer) ringRadius(gen int) float64 {
	if gen <= 0 {
		return 0
	}
	base := float64(gen) / float64(w.maxGen)
	if gen >= 8 {
		base += 0.012 * float64(gen-7)
	}
	return base * w.radius
}

// sectorPath builds the SVG path for an annular sector. A zero inner radius
// degenerates to a pie slice from the center.
func (w *wheelRenderer) sectorPath(r0, r1, a0, a1 float64) string {
	largeArc := 0
	if a1-a0 > math.Pi {
		largeArc = 1
	}

	x0o, y0o := w.point(r1, a0)
	x1o, y1o := w.point(r1, a1)
	if r0 <= 0 {
		return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z",
			w.cx, w.cy, x0o, y0o, r1, r1, largeArc, x1o, y1o)
	}

	x0i, y0i := w.point(r0, a0)
	x1i, y1i := w.point(r0, a1)
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		x0o, y0o, r1, r1, largeArc, x1o, y1o,
		x1i, y1i, r0, r0, largeArc, x0i, y0i)
}

// point converts polar to SVG coordinates. SVG's y axis points down, so the
// sine term is negated to keep angles counter-clockwise on screen.
func (w *wheelRenderer) point(r, a float64) (float64, float64) {
	return w.cx + r*math.Cos(a), w.cy - r*math.Sin(a)
}

// label places the wedge text at mid-radius and mid-angle. Shallow
// generations read tangentially, deep ones radially, and the font shrinks
// to fit both the arc length and the ring thickness.
func (w *wheelRenderer) label(b *strings.Builder, n *pedigree.Node, r0, r1, a0, a1 float64) {
	text := wedgeText(n.Individual, n.Generation)
	if text == "" {
		return
	}

	mid := (a0 + a1) / 2
	rMid := (r0 + r1) / 2
	x, y := w.point(rMid, mid)

	midDeg := math.Mod(mid*180/math.Pi, 360)
	var rotation float64
	if n.Generation >= 5 {
		rotation = -midDeg // radial
	} else {
		rotation = -(midDeg - 90) // tangential
	}

	thickness := math.Max(r1-r0, 1)
	arcLen := math.Max((a1-a0)*rMid, 1)
	base := math.Max(4, 24/math.Pow(2, float64(n.Generation-1))*3)
	scale := math.Min(1, math.Min(arcLen/(0.62*float64(len(text))*base), thickness/(1.4*base)))
	font := math.Max(5, base*scale)

	fmt.Fprintf(b, "  <text x=\"%.2f\" y=\"%.2f\" text-anchor=\"middle\" dominant-baseline=\"middle\" font-size=\"%.1f\" font-family=\"sans-serif\" transform=\"rotate(%.1f %.2f %.2f)\">%s</text>\n",
		x, y, font, rotation, x, y, html.EscapeString(text))
}

// wedgeText picks the label for a generation: full name with country tag
// and year while rings are wide, stripped single-line names once they get
// thin.
func wedgeText(rec pedigree.Individual, gen int) string {
	name := rec.DisplayName()
	if name == "" {
		return ""
	}
	if gen >= 8 {
		return StripCountry(name)
	}
	return strings.TrimSpace(name + " " + rec.Year)
}

func wheelFill(sex pedigree.Sex) string {
	switch sex {
	case pedigree.SexMale:
		return wheelSireFill
	case pedigree.SexFemale:
		return wheelDamFill
	default:
		return wheelUnknownFill
	}
}

// outlineColors maps each distinct repeated ancestor to its outline color.
func outlineColors(report pedigree.Report) map[string]string {
	colors := make(map[string]string)
	for _, e := range report.Distinct() {
		switch e.Branch {
		case pedigree.BranchSire:
			colors[e.ID] = wheelEdgeSire
		case pedigree.BranchDam:
			colors[e.ID] = wheelEdgeDam
		default:
			colors[e.ID] = wheelEdgeBoth
		}
	}
	return colors
}

// treeDepth returns the deepest generation present in the tree.
func treeDepth(root *pedigree.Node) int {
	depth := 0
	root.Walk(func(n *pedigree.Node) {
		if n.Generation > depth {
			depth = n.Generation
		}
	})
	if depth < 1 {
		depth = 1
	}
	return depth
}

// wrapSummary splits the " / "-joined summary into lines no longer than
// width characters, breaking only between entries.
func wrapSummary(summary string, width int) []string {
	if summary == "" {
		return nil
	}

	var lines []string
	current := ""
	for _, part := range strings.Split(summary, " / ") {
		candidate := part
		if current != "" {
			candidate = current + " / " + part
		}
		if len(candidate) > width && current != "" {
			lines = append(lines, current)
			current = part
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
