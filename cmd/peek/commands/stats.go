package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/ui/output"
	"go.trai.ch/peek/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show what the asset mappings hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c.app.Load(ctx)

			stats, err := c.app.Stats(ctx, "")
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			return writeStats(cmd.OutOrStdout(), stats, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print the stats as JSON")
	return cmd
}

func writeStats(w io.Writer, stats domain.Stats, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			return zerr.Wrap(err, "failed to write stats")
		}
		return nil
	}

	s := style.NewStyles(output.Renderer(w))

	status := "empty"
	if stats.Loaded {
		status = "loaded"
	}
	lastUpdate := "never"
	if !stats.LastUpdate.IsZero() {
		lastUpdate = stats.LastUpdate.Format(time.RFC3339)
	}
	activity := "-"
	if stats.ActivitySignal != "" {
		activity = stats.ActivitySignal
	}

	lines := []string{
		s.Title.Render("Asset mappings"),
		s.Row("status", s.Status(stats.Loaded, status)),
		s.Row("entries", strconv.Itoa(stats.Total)),
		s.Row("workspaces", strconv.Itoa(stats.Workspaces)),
		s.Row("last update", lastUpdate),
		s.Row("activity", activity),
	}
	if stats.Fingerprint != 0 {
		lines = append(lines, s.Row("fingerprint", fmt.Sprintf("%016x", stats.Fingerprint)))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
