package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions - fatih/color disables them when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// setOutput points all Print helpers at the given writers.
func setOutput(out, errOut io.Writer) {
	stdout = out
	stderr = errOut
}

// PrintSection prints a section header
func PrintSection(title string) {
	_, _ = fmt.Fprintln(stdout)
	_, _ = headerColor.Fprintf(stdout, "▸ %s\n", title)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(stdout, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(stderr, "⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(stderr, "✗ %s\n", msg)
}

// PrintAlert prints a failure that belongs to the command's normal output,
// such as a digest mismatch, with the same weight as an error.
func PrintAlert(msg string) {
	_, _ = errorColor.Fprintf(stdout, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	_, _ = fmt.Fprintln(stdout, msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(stdout, "  %s: ", label)
	_, _ = valueColor.Fprintln(stdout, value)
}

// PrintLabelValueWithColor prints a label-value pair with a custom value color
func PrintLabelValueWithColor(label, value string, valueClr *color.Color) {
	_, _ = labelColor.Fprintf(stdout, "  %s: ", label)
	_, _ = valueClr.Fprintln(stdout, value)
}

// PrintNumberedList prints a numbered list
func PrintNumberedList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for i, item := range items {
		_, _ = infoColor.Fprintf(stdout, "%s%3d. %s\n", indentStr, i+1, item)
	}
}

// PrintTable prints a simple column table
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	_, _ = fmt.Fprint(stdout, "  ")
	for i, header := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(stdout, "  ")
		}
		_, _ = headerColor.Fprintf(stdout, "%-*s", colWidths[i], header)
	}
	_, _ = fmt.Fprintln(stdout)

	_, _ = fmt.Fprint(stdout, "  ")
	for i, width := range colWidths {
		if i > 0 {
			_, _ = fmt.Fprint(stdout, "  ")
		}
		_, _ = fmt.Fprint(stdout, strings.Repeat("-", width))
	}
	_, _ = fmt.Fprintln(stdout)

	for _, row := range rows {
		_, _ = fmt.Fprint(stdout, "  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				_, _ = fmt.Fprint(stdout, "  ")
			}
			_, _ = valueColor.Fprintf(stdout, "%-*s", colWidths[i], cell)
		}
		_, _ = fmt.Fprintln(stdout)
	}
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Fprintf(stdout, "  %s\n", msg)
}

// PrintSeparator prints a visual separator line
func PrintSeparator() {
	_, _ = labelColor.Fprintln(stdout, "  "+strings.Repeat("─", 70))
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
