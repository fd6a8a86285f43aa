package cli

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/hashguard/internal/engine"
)

var listDigests bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked files",
	Long: `Display all tracked files, numbered in listing order.

The numbers can be passed to "hashguard remove".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		return runList(cmd.Context(), eng, listDigests)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listDigests, "digests", false, "Show the recorded SHA-256 of each file")
}

// listEntry is the JSON shape of one listed file.
type listEntry struct {
	Index      int    `json:"index"`
	Path       string `json:"path"`
	Digest     string `json:"digest"`
	RecordedAt string `json:"recordedAt,omitempty"`
}

func runList(ctx context.Context, eng *engine.Engine, digests bool) error {
	if jsonOutput {
		entries := eng.Entries(ctx)
		out := make([]listEntry, 0, len(entries))
		for i, e := range entries {
			le := listEntry{Index: i + 1, Path: e.Path, Digest: e.Digest}
			if e.RecordedAt != nil {
				le.RecordedAt = e.RecordedAt.Format(time.RFC3339)
			}
			out = append(out, le)
		}
		return outputJSON(out)
	}

	if eng.Len() == 0 {
		PrintEmptyState("No files are being tracked.")
		return nil
	}

	PrintSection("Tracked Files:")
	if !digests {
		PrintNumberedList(slices.Collect(eng.List(ctx)), 0)
		return nil
	}

	rows := [][]string{}
	for i, e := range eng.Entries(ctx) {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Path, e.Digest})
	}
	PrintTable([]string{"#", "PATH", "SHA-256"}, rows)
	return nil
}
