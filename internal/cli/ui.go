// internal/cli/ui.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/gagin/patchlevel/internal/updater"
)

var (
	diffHeaderColor = color.New(color.Bold)
	diffHunkColor   = color.New(color.FgCyan)
	diffAddColor    = color.New(color.FgGreen)
	diffDelColor    = color.New(color.FgRed)
)

// printDiff writes a unified diff, coloring it when color output is enabled.
func printDiff(w io.Writer, diff string) {
	for _, line := range updater.SplitLines(diff) {
		text := strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			diffHeaderColor.Fprint(w, text)
		case strings.HasPrefix(text, "@@"):
			diffHunkColor.Fprint(w, text)
		case strings.HasPrefix(text, "+"):
			diffAddColor.Fprint(w, text)
		case strings.HasPrefix(text, "-"):
			diffDelColor.Fprint(w, text)
		default:
			fmt.Fprint(w, text)
		}
		fmt.Fprintln(w)
	}
}
