package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/hashguard/internal/engine"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Verify a single tracked file",
	Long: `Recompute the SHA-256 of a tracked file and compare it with its baseline.

Exits non-zero when the file was modified or can no longer be read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		return runVerify(cmd.Context(), eng, args[0])
	},
}

func runVerify(ctx context.Context, eng *engine.Engine, path string) error {
	result, err := eng.Verify(ctx, path)
	if result == nil {
		return err
	}

	if jsonOutput {
		if jerr := outputJSON(result); jerr != nil {
			return jerr
		}
	} else {
		PrintSection(fmt.Sprintf("Verification Result for: %s", result.Path))
		PrintLabelValue("Stored SHA-256 ", result.StoredDigest)
		switch result.Status {
		case engine.StatusMatch:
			PrintLabelValue("Current SHA-256", result.CurrentDigest)
			PrintSuccess("INTEGRITY VERIFIED (File unchanged)")
		case engine.StatusMismatch:
			PrintLabelValueWithColor("Current SHA-256", result.CurrentDigest, warningColor)
			PrintAlert("!!! INTEGRITY COMPROMISED !!!")
			PrintAlert("File has been modified or corrupted!")
		default:
			PrintLabelValueWithColor("Current SHA-256", "unavailable", warningColor)
			PrintAlert("INTEGRITY UNKNOWN: " + describeError(result.Err))
		}
	}

	if result.Status != engine.StatusMatch {
		return fmt.Errorf("%w: %s", ErrIntegrityCompromised, result.Path)
	}
	return nil
}
