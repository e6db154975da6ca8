package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
	"github.com/bloodline-tools/bloodline/pkg/pipeline"
	"github.com/bloodline-tools/bloodline/pkg/render"
)

// reportCommand creates the report command for terminal inbreeding reports.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		showAll  bool
		asJSON   bool
		jsonPath string
	)

	cmd := &cobra.Command{
		Use:   "report <subject>",
		Short: "Print the inbreeding report",
		Long: `Analyze the subject's ancestry for repeated ancestors and print each one
with its blood percentage, generation cross, and the side of the pedigree
that reaches it. Ancestors whose recurrence is entirely explained by a
closer repeated ancestor are hidden unless --all is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			subject := args[0]

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Execute(ctx, pipeline.Options{
				Subject:     subject,
				Generations: c.generations,
				VizType:     pipeline.VizTable,
				Formats:     []string{pipeline.FormatJSON},
				Logger:      c.Logger,
			})
			if err != nil {
				return err
			}

			if asJSON {
				fmt.Println(string(result.Artifacts[pipeline.FormatJSON]))
				return nil
			}
			if jsonPath != "" {
				if err := writeArtifact(jsonPath, result.Artifacts[pipeline.FormatJSON]); err != nil {
					return err
				}
				printFile(jsonPath)
			}

			printReport(runner.Records, subject, result, showAll)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "include subsumed ancestors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON instead")
	cmd.Flags().StringVarP(&jsonPath, "output", "o", "", "also write the JSON report to a file")

	return cmd
}

// printReport renders the styled terminal report.
func printReport(records pedigree.Store, subject string, result *pipeline.Result, showAll bool) {
	title := subject
	if rec, ok := records.Lookup(subject); ok {
		title = strings.TrimSpace(rec.DisplayName() + " " + rec.Year)
	}
	fmt.Println(StyleTitle.Render(title))
	printDetail("%d generations analyzed", result.Stats.Generations)
	fmt.Println()

	entries := result.Report.Distinct()
	if showAll {
		entries = result.Report.All()
	}
	if len(entries) == 0 {
		printInfo("%s", render.NoInbreeding)
		return
	}

	headers := []string{"Ancestor", "Blood", "Cross", "Branch"}
	if showAll {
		headers = append(headers, "")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		name := e.ID
		if rec, ok := records.Lookup(e.ID); ok {
			name = render.StripCountry(rec.DisplayName())
		}

		gens := make([]int, len(e.Generations))
		copy(gens, e.Generations)
		for i, j := 0, len(gens)-1; i < j; i, j = i+1, j-1 {
			gens[i], gens[j] = gens[j], gens[i]
		}
		crosses := make([]string, len(gens))
		for i, g := range gens {
			crosses[i] = strconv.Itoa(g)
		}

		row := []string{
			name,
			fmt.Sprintf("%.2f%%", e.Percentage),
			strings.Join(crosses, " x "),
			string(e.Branch),
		}
		if showAll {
			note := ""
			if result.Report.IsSubsumed(e.ID) {
				note = "subsumed"
			}
			row = append(row, note)
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			if col == 3 && row < len(entries) {
				switch entries[row].Branch {
				case pedigree.BranchSire:
					return styleBranchSire
				case pedigree.BranchDam:
					return styleBranchDam
				default:
					return styleBranchBoth
				}
			}
			return StyleValue
		})
	fmt.Println(t.Render())

	if showAll {
		fmt.Println()
		printDetail("%d entries, %d distinct", len(entries), len(result.Report.Distinct()))
	}
}
