package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloodline-tools/bloodline/pkg/pipeline"
)

// wheelCommand creates the wheel command for radial pedigree charts.
func (c *CLI) wheelCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		size       int
		noSummary  bool
	)

	cmd := &cobra.Command{
		Use:   "wheel <subject>",
		Short: "Render a radial pedigree wheel",
		Long: `Render the subject's ancestry as a radial wheel: one ring per generation,
the sire half on the left and the dam half on the right. Repeated
ancestors are outlined in branch colors (blue sire, red dam, purple
both).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, renderRequest{
				subject: args[0],
				opts: pipeline.Options{
					VizType:   pipeline.VizWheel,
					Formats:   parseFormats(formatsStr, pipeline.FormatSVG),
					WheelSize: size,
					NoSummary: noSummary,
				},
				output:  output,
				message: "Rendering pedigree wheel",
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, applies to single-format runs (default <subject>.<format>)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().IntVar(&size, "size", 0, "wheel diameter in pixels (default 900)")
	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "omit the inbreeding summary line")

	return cmd
}

// parseFormats parses a comma-separated format flag, with fallback.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	return strings.Split(s, ",")
}
