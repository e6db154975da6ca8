package cli

import (
	"github.com/spf13/cobra"

	"github.com/bloodline-tools/bloodline/pkg/pipeline"
)

// tableCommand creates the table command for HTML pedigree tables.
func (c *CLI) tableCommand() *cobra.Command {
	var (
		output    string
		noSummary bool
	)

	cmd := &cobra.Command{
		Use:   "table <subject>",
		Short: "Render a row-span HTML pedigree table",
		Long: `Render the subject's ancestry as the classic printed-pedigree table: one
column per generation, ancestors merged vertically across the rows they
cover. The inbreeding summary is printed above the table unless
--no-summary is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, renderRequest{
				subject: args[0],
				opts: pipeline.Options{
					VizType:   pipeline.VizTable,
					Formats:   []string{pipeline.FormatHTML},
					NoSummary: noSummary,
				},
				output:  output,
				message: "Rendering pedigree table",
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <subject>.html)")
	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "omit the inbreeding summary line")

	return cmd
}

// renderRequest bundles everything one render command hands to the pipeline.
type renderRequest struct {
	subject string
	opts    pipeline.Options
	output  string
	message string
}

// runRender is the shared body of the table, wheel, and graph commands:
// load records, execute the pipeline, write every artifact to disk.
func (c *CLI) runRender(cmd *cobra.Command, req renderRequest) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	req.opts.Subject = req.subject
	req.opts.Generations = c.generations
	req.opts.Refresh = c.refresh
	req.opts.Logger = c.Logger

	p := newProgress(c.Logger)
	spinner := newSpinner(ctx, req.message)
	spinner.Start()
	result, err := runner.Execute(ctx, req.opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	p.done(req.message)

	printSuccess("Rendered %s", req.subject)
	if c.generations > result.Stats.Generations {
		printWarning("Only %d generations recorded, reduced from the %d requested", result.Stats.Generations, c.generations)
	}
	paths, dropped := artifactPaths(req.output, req.subject, req.opts.Formats)
	if dropped {
		printWarning("Ignoring --output with multiple formats, writing default file names")
	}
	for i, format := range req.opts.Formats {
		if err := writeArtifact(paths[i], result.Artifacts[format]); err != nil {
			return err
		}
		printFile(paths[i])
	}

	printStats(result.Stats.Generations, result.Stats.Rows, result.Stats.RepeatedAncestors, result.CacheInfo.RenderHit)
	if result.Summary != "" {
		printDetail("%s", result.Summary)
	}
	return nil
}
