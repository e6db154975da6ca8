package cli

import (
	"github.com/spf13/cobra"

	"github.com/bloodline-tools/bloodline/internal/server"
)

// serveCommand creates the serve command for the HTTP pedigree server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pedigrees over HTTP",
		Long: `Start an HTTP server exposing the loaded records. Each subject gets an
HTML table at /pedigree/{id}, a wheel at /pedigree/{id}/wheel.svg, a graph
at /pedigree/{id}/graph.svg, and the JSON report at /pedigree/{id}/report.
The server shuts down cleanly on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Listening on %s", StyleValue.Render(addr))
			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
