package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/peek/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer editor requests as newline-delimited JSON on stdin/stdout",
		Long: "Run the editor daemon. Requests are read from stdin and answered on stdout, one JSON\n" +
			"object per line. Mapping files and the config file are watched and reloaded on change.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idle, _ := cmd.Flags().GetDuration("idle-timeout")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
				IdleTimeout: idle,
			})
		},
	}
	cmd.Flags().Duration("idle-timeout", 0, "Stop after this long without requests (0 disables)")
	return cmd
}
