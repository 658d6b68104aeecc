package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newReloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reload",
		Short: "Reload the asset mappings of every workspace and report the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.app.Reload(cmd.Context(), "")
			asJSON, _ := cmd.Flags().GetBool("json")
			if writeErr := writeStats(cmd.OutOrStdout(), stats, asJSON); writeErr != nil {
				return writeErr
			}
			return err
		},
	}
	cmd.Flags().Bool("json", false, "Print the stats as JSON")
	return cmd
}
