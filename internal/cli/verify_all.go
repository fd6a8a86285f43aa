package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/hashguard/internal/engine"
)

var verifyAllCmd = &cobra.Command{
	Use:   "verify-all",
	Short: "Verify every tracked file",
	Long: `Verify every tracked file against its baseline. One unreadable file does not
stop the others.

Exits non-zero when any file was modified or could not be read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		return runVerifyAll(cmd.Context(), eng)
	},
}

// statusLabel is the fixed-width label printed per file.
func statusLabel(s engine.Status) string {
	switch s {
	case engine.StatusMatch:
		return "OK"
	case engine.StatusMismatch:
		return "FAILED"
	default:
		return "ERROR"
	}
}

func runVerifyAll(ctx context.Context, eng *engine.Engine) error {
	result := eng.VerifyAll(ctx)

	if jsonOutput {
		if err := outputJSON(result); err != nil {
			return err
		}
	} else {
		if len(result.Results) == 0 {
			PrintEmptyState("No files are being tracked.")
			return nil
		}

		PrintSection("Verifying all tracked files...")
		PrintSeparator()
		for _, r := range result.Results {
			line := fmt.Sprintf("  %-8s | %s", statusLabel(r.Status), r.Path)
			switch r.Status {
			case engine.StatusMatch:
				_, _ = successColor.Fprintln(stdout, line)
			case engine.StatusMismatch:
				_, _ = errorColor.Fprintln(stdout, line)
			default:
				_, _ = errorColor.Fprintln(stdout, line+"  ("+describeError(r.Err)+")")
			}
		}
		PrintSeparator()
		PrintInfo(fmt.Sprintf("  %d ok, %d modified, %d unreadable",
			result.Matched, result.Mismatched, result.Failed))
	}

	if !result.OK() {
		return fmt.Errorf("%w: %s modified, %s unreadable", ErrIntegrityCompromised,
			PrintCount(result.Mismatched, "file", "files"), PrintCount(result.Failed, "file", "files"))
	}
	return nil
}
