package cli

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
	"github.com/bloodline-tools/bloodline/pkg/pipeline"
)

// browseCommand creates the browse command for interactive subject selection.
func (c *CLI) browseCommand() *cobra.Command {
	var viz string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a subject interactively and render it",
		Long: `Open an interactive picker over the loaded records. Type to filter by
identifier or name, select an individual, and its pedigree is rendered
with the chosen visualization's default format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateVizType(viz); err != nil {
				return err
			}

			loaded, err := c.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			individuals := make([]pedigree.Individual, 0, len(loaded.Store))
			for _, id := range loaded.Store.IDs() {
				in, _ := loaded.Store.Lookup(id)
				individuals = append(individuals, in)
			}
			sort.Slice(individuals, func(i, j int) bool {
				if individuals[i].Name != individuals[j].Name {
					return individuals[i].Name < individuals[j].Name
				}
				return individuals[i].ID < individuals[j].ID
			})

			if len(individuals) == 0 {
				printError("No records loaded")
				return fmt.Errorf("no records loaded")
			}

			m := NewIndividualListModel(individuals)
			p := tea.NewProgram(m)
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			fm, ok := finalModel.(IndividualListModel)
			if !ok || fm.Selected == nil {
				printDetail("No selection made")
				return nil
			}

			return c.runRender(cmd, renderRequest{
				subject: fm.Selected.Individual.ID,
				opts: pipeline.Options{
					VizType: viz,
				},
				message: fmt.Sprintf("Rendering %s", fm.Selected.Individual.DisplayName()),
			})
		},
	}

	cmd.Flags().StringVar(&viz, "viz", pipeline.VizTable, "visualization type (table, wheel, graph)")

	return cmd
}
