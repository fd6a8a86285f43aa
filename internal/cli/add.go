package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/hashguard/internal/engine"
)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Track files and record their SHA-256",
	Long: `Compute the SHA-256 of each file and store it as the file's baseline.

Adding a file that is already tracked replaces its baseline.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		return runAdd(cmd.Context(), eng, args)
	},
}

// runAdd adds every path, reporting each failure without stopping.
func runAdd(ctx context.Context, eng *engine.Engine, paths []string) error {
	results := make([]*engine.AddResult, 0, len(paths))
	var failed int
	var lastErr error

	for _, p := range paths {
		result, err := eng.Add(ctx, p)
		if err != nil {
			if len(paths) > 1 {
				PrintError(describeError(err))
			}
			failed++
			lastErr = err
			continue
		}
		results = append(results, result)
	}
	if len(paths) == 1 && failed == 1 {
		return lastErr
	}

	if jsonOutput {
		if err := outputJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			switch {
			case r.Changed():
				PrintWarning(fmt.Sprintf("Baseline replaced for %s", r.Path))
				PrintLabelValue("Previous SHA-256", r.PreviousDigest)
			case r.Replaced:
				PrintSuccess(fmt.Sprintf("Baseline refreshed (unchanged): %s", r.Path))
			default:
				PrintSuccess(fmt.Sprintf("File added and hash stored successfully: %s", r.Path))
			}
			PrintLabelValue("SHA-256", r.Digest)
		}
	}

	if failed == 0 {
		return nil
	}
	return errReported{fmt.Errorf("%d of %d files could not be added: %w", failed, len(paths), lastErr)}
}

// errReported wraps an error whose message was already printed.
type errReported struct {
	err error
}

func (e errReported) Error() string { return e.err.Error() }
func (e errReported) Unwrap() error { return e.err }
