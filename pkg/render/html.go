package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// TableOptions configures HTML table rendering.
type TableOptions struct {
	// Title overrides the page title. When empty the title is derived from
	// the subject and the generation count.
	Title string

	// Summary is the inbreeding summary line printed above the table.
	// Empty omits the line.
	Summary string
}

// Table renders the tree as a complete HTML page holding the classic
// row-span pedigree table: one column per generation, ancestors merged
// vertically over the rows their span covers. Placeholder nodes become blank
// cells so the grid stays rectangular.
//
// [pedigree.AssignSpans] must have run on the tree; Table trusts the span
// fields as row coordinates.
func Table(root *pedigree.Node, generations int, opts TableOptions) []byte {
	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("%s — %d-generation pedigree", nameYear(root.Individual), generations)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "  <style>%s</style>\n", tableCSS(generations))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "  <div class=\"title\">%s</div>\n", html.EscapeString(title))
	if opts.Summary != "" {
		fmt.Fprintf(&b, "  <div class=\"summary\">%s</div>\n", html.EscapeString(opts.Summary))
	}
	b.WriteString("  <table class=\"pedigree\">\n")
	b.WriteString(tableRows(root, generations))
	b.WriteString("  </table>\n</body>\n</html>\n")
	return []byte(b.String())
}

// tableRows emits the <tr> rows. Each column keeps a coverage counter: a
// cell spanning r rows suppresses cell emission in that column for the next
// r-1 rows.
func tableRows(root *pedigree.Node, generations int) string {
	cells := pedigree.CollectCells(root)
	rows := root.SpanLen()
	coverage := make([]int, generations)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		b.WriteString("    <tr>")
		for col := 0; col < generations; col++ {
			if coverage[col] > 0 {
				coverage[col]--
				continue
			}
			node := cells[pedigree.Cell{Row: row, Generation: col}]
			if node == nil {
				b.WriteString(`<td class="b_empty">&nbsp;</td>`)
				continue
			}
			span := node.SpanLen()
			coverage[col] = span - 1
			fmt.Fprintf(&b, `<td class=%q rowspan="%d">%s</td>`, cellClass(node.Individual), span, cellLabel(node.Individual))
		}
		b.WriteString("</tr>\n")
	}
	return b.String()
}

// cellLabel builds the cell contents: the display name, a metadata line with
// year and notes when present, and a link wrapper when the record carries a
// URL. Placeholders render as a non-breaking space so empty cells keep their
// height.
func cellLabel(rec pedigree.Individual) string {
	if rec.Placeholder {
		return "&nbsp;"
	}

	label := html.EscapeString(rec.DisplayName())
	meta := strings.TrimSpace(rec.Year + " " + rec.Notes)
	if meta != "" {
		label += `<br><span class="meta">` + html.EscapeString(meta) + `</span>`
	}
	if rec.URL != "" {
		label = fmt.Sprintf(`<a href=%q>%s</a>`, rec.URL, label)
	}
	return label
}

func cellClass(rec pedigree.Individual) string {
	switch {
	case rec.Placeholder:
		return "b_empty"
	case rec.Sex == pedigree.SexMale:
		return "b_ml"
	case rec.Sex == pedigree.SexFemale:
		return "b_fml"
	default:
		return "b_unknown"
	}
}

func tableCSS(generations int) string {
	return fmt.Sprintf(`
    body { font-family: "Helvetica Neue", Arial, sans-serif; background: #f5f6f8; }
    .pedigree { border-collapse: separate; border-spacing: 2px; width: 100%%; max-width: 1100px; margin: 12px auto 24px; }
    .pedigree td { background: #fff; border: 1px solid #d7d7d7; padding: 8px; font-size: 13px; line-height: 1.3; vertical-align: middle; width: %.2f%%; }
    .pedigree .b_ml { background: #eef4ff; }
    .pedigree .b_fml { background: #fff1f4; }
    .pedigree .b_unknown { background: #f2f2f2; color: #777; }
    .pedigree .b_empty { background: #fafafa; color: #bbb; }
    .pedigree .meta { color: #666; font-size: 11px; }
    .pedigree a { color: #1a4fb4; text-decoration: none; }
    .pedigree a:hover { text-decoration: underline; }
    .title { max-width: 1100px; margin: 24px auto 0; font-size: 18px; font-weight: bold; }
    .summary { max-width: 1100px; margin: 6px auto 0; font-size: 13px; color: #444; }
  `, 100.0/float64(generations))
}
