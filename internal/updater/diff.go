// internal/updater/diff.go
package updater

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders the difference between the original and updated
// content of path. It returns "" when both are equal.
func UnifiedDiff(path, original, updated string) (string, error) {
	if original == updated {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(updated),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}
