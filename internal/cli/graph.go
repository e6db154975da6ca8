package cli

import (
	"github.com/spf13/cobra"

	"github.com/bloodline-tools/bloodline/pkg/pipeline"
)

// graphCommand creates the graph command for node-link diagrams.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "graph <subject>",
		Short: "Render an ancestry node-link diagram via Graphviz",
		Long: `Render the subject's ancestry as a directed graph: one node per tree
position, oldest generations at the top. An ancestor repeated through
several lines appears once per line, so inbreeding shows up as converging
edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, renderRequest{
				subject: args[0],
				opts: pipeline.Options{
					VizType:  pipeline.VizGraph,
					Formats:  parseFormats(formatsStr, pipeline.FormatSVG),
					Detailed: detailed,
				},
				output:  output,
				message: "Rendering ancestry graph",
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, applies to single-format runs (default <subject>.<format>)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include identifiers and generation numbers in labels")

	return cmd
}
