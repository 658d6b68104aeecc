package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newHoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hover <file> <line> <column>",
		Short: "Print the preview for a position in a file",
		Long: "Print the Markdown preview for the image reference or asset identifier at a position.\n" +
			"The line is 1-based; the column is a 0-based character offset.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parsePosition("line", args[1])
			if err != nil {
				return err
			}
			column, err := parsePosition("column", args[2])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c.app.Load(ctx)

			hover, err := c.app.HoverFile(ctx, args[0], line, column)
			if err != nil {
				return err
			}
			if hover.Preview.Kind == domain.PreviewNone {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "nothing to preview at this position")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hover.Markdown)
			return nil
		},
	}
}

func parsePosition(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "invalid "+name), name, value)
	}
	return n, nil
}
