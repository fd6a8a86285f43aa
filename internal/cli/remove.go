package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/hashguard/internal/engine"
)

var removeCmd = &cobra.Command{
	Use:     "remove <path|number>",
	Aliases: []string{"rm"},
	Short:   "Stop tracking a file",
	Long: `Remove a file from tracking, by path or by its number in "hashguard list".

A tracked path always wins over a number.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		return runRemove(cmd.Context(), eng, args[0])
	},
}

func runRemove(ctx context.Context, eng *engine.Engine, selector string) error {
	result, err := eng.Remove(ctx, selector)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}
	PrintSuccess(fmt.Sprintf("File removed from tracking: %s", result.Path))
	return nil
}
