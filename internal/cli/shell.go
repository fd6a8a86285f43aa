package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/hashguard/internal/engine"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive menu",
	Long: `Run the interactive file integrity menu.

Every change is saved as soon as it is made. Choosing "Exit & Save" (or
closing input) writes the database once more and exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return errors.New("the shell does not support --json")
		}
		eng, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		return runShell(cmd.Context(), eng, cmd.InOrStdin())
	},
}

const (
	menuRule    = "============================================================"
	savedNotice = "Hash database updated successfully."
)

// shell is one interactive session over an engine.
type shell struct {
	eng *engine.Engine
	in  *bufio.Scanner
}

func runShell(ctx context.Context, eng *engine.Engine, in io.Reader) error {
	sh := &shell{eng: eng, in: bufio.NewScanner(in)}

	PrintInfo("File Integrity Checker - Cybersecurity Tool")
	for {
		sh.menu()
		choice, ok := sh.prompt("Choose (1-6): ")
		if !ok {
			choice = "6"
		}

		switch choice {
		case "1":
			if path, ok := sh.prompt("\nEnter full path to file to track: "); ok {
				sh.saved(runAdd(ctx, eng, []string{path}))
			}
		case "2":
			if path, ok := sh.prompt("\nEnter full path to file to verify: "); ok {
				sh.report(runVerify(ctx, eng, path))
			}
		case "3":
			sh.report(runVerifyAll(ctx, eng))
		case "4":
			sh.report(runList(ctx, eng, false))
		case "5":
			sh.remove(ctx)
		case "6":
			if err := eng.Save(ctx); err != nil {
				return err
			}
			PrintInfo(savedNotice)
			PrintInfo("Goodbye! Stay secure.")
			return nil
		default:
			PrintError("Invalid choice.")
		}
	}
}

func (sh *shell) menu() {
	PrintInfo("\n" + menuRule)
	_, _ = headerColor.Fprintln(stdout, "     FILE INTEGRITY CHECKER & HASH VERIFIER")
	PrintInfo(menuRule)
	PrintInfo("1. Add file to track (compute & store hash)")
	PrintInfo("2. Verify a single file")
	PrintInfo("3. Verify all tracked files")
	PrintInfo("4. List all tracked files")
	PrintInfo("5. Remove file from tracking")
	PrintInfo("6. Exit & Save")
	PrintInfo(menuRule)
}

// prompt prints msg and reads one trimmed line. It returns false once input
// is exhausted.
func (sh *shell) prompt(msg string) (string, bool) {
	_, _ = fmt.Fprint(stdout, msg)
	if !sh.in.Scan() {
		_, _ = fmt.Fprintln(stdout)
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *shell) remove(ctx context.Context) {
	if sh.eng.Len() == 0 {
		PrintEmptyState("No files are being tracked.")
		return
	}
	sh.report(runList(ctx, sh.eng, false))

	choice, ok := sh.prompt("\nEnter number of file to remove: ")
	if !ok {
		return
	}
	index, err := strconv.Atoi(choice)
	if err != nil {
		sh.report(fmt.Errorf("%w: %q is not a number", engine.ErrInvalidSelection, choice))
		return
	}
	result, err := sh.eng.RemoveAt(ctx, index)
	if err != nil {
		sh.report(err)
		return
	}
	PrintSuccess(fmt.Sprintf("File removed from tracking: %s", result.Path))
	PrintInfo(savedNotice)
}

// saved reports the outcome of a mutating menu action.
func (sh *shell) saved(err error) {
	if err != nil {
		sh.report(err)
		return
	}
	PrintInfo(savedNotice)
}

// report prints a failed menu action and keeps the session going.
func (sh *shell) report(err error) {
	var reported errReported
	if err == nil || errors.Is(err, ErrIntegrityCompromised) || errors.As(err, &reported) {
		return
	}
	PrintError(describeError(err))
}
