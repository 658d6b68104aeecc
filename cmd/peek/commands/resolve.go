package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [assetId]",
		Short: "Print the URL an asset identifier maps to",
		Long:  "Print the URL an asset identifier maps to in the primary workspace.\nWithout an argument, list every loaded asset identifier.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.app.Load(ctx)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				ids, err := c.app.AssetIDs("")
				if err != nil {
					return err
				}
				for _, id := range ids {
					_, _ = fmt.Fprintln(out, id)
				}
				return nil
			}

			url, ok, err := c.app.Resolve(ctx, args[0], "")
			if err != nil {
				return err
			}
			if !ok {
				return zerr.With(domain.ErrAssetUnresolved, "asset", args[0])
			}
			_, _ = fmt.Fprintln(out, url)
			return nil
		},
	}
}
