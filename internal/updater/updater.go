// internal/updater/updater.go
package updater

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gagin/patchlevel/internal/rewrite"
)

// Options controls a single Update call.
type Options struct {
	// DryRun computes the result and a diff without writing the file.
	DryRun bool
}

// Change records one line rewritten by a rule.
type Change struct {
	Line   int // 1-based
	Rule   string
	Before string
	After  string
}

// Result describes what Update did (or, in a dry run, would do).
type Result struct {
	Path      string
	LinesRead int
	Changes   []Change
	Written   bool
	Diff      string // unified diff, dry run only
}

// Update reads the file at path, applies every rule to every line in order,
// and writes the full content back to the same path. The file is rewritten
// even when no line changed. A missing file yields an error matching
// fs.ErrNotExist and nothing is created.
func Update(path string, rules []rewrite.Rule, opts Options) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	lines := SplitLines(string(content))
	res := &Result{Path: path, LinesRead: len(lines)}
	slog.Debug("Read file.", "path", path, "lines", len(lines), "bytes", len(content))

	var out strings.Builder
	out.Grow(len(content))
	for i, line := range lines {
		updated := line
		for _, rule := range rules {
			next, matched := rule.Apply(updated)
			if !matched {
				continue
			}
			slog.Debug("Rule matched.", "path", path, "line", i+1, "rule", rule.Name())
			if next != updated {
				res.Changes = append(res.Changes, Change{
					Line:   i + 1,
					Rule:   rule.Name(),
					Before: updated,
					After:  next,
				})
			}
			updated = next
		}
		out.WriteString(updated)
	}
	updatedContent := out.String()

	if len(res.Changes) == 0 {
		slog.Info("No declarations matched.", "path", path)
	}

	if opts.DryRun {
		res.Diff, err = UnifiedDiff(path, string(content), updatedContent)
		if err != nil {
			return res, fmt.Errorf("failed to build diff: %w", err)
		}
		slog.Info("Dry run, file left untouched.", "path", path, "changes", len(res.Changes))
		return res, nil
	}

	if err := os.WriteFile(path, []byte(updatedContent), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("failed to write file: %w", err)
	}
	res.Written = true
	slog.Info("File rewritten.", "path", path, "changes", len(res.Changes))
	return res, nil
}

// SplitLines splits s after each "\n", keeping terminators so that joining
// the result reproduces s exactly. The last line may lack a terminator.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
