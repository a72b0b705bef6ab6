// internal/rewrite/rewrite.go
package rewrite

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"sync"
)

// Rule rewrites a single line of text. Apply reports whether the rule's
// pattern matched; a line that does not match is returned unchanged.
type Rule interface {
	Name() string
	Apply(line string) (string, bool)
}

var errEmptyIdentifier = errors.New("identifier must not be empty")

// identifierPattern builds a regex fragment for a constant name, relaxing each
// "_" word separator to an underscore or whitespace followed by optional
// whitespace (PATCH_LEVEL, PATCH_ LEVEL and PATCH LEVEL all match).
func identifierPattern(identifier string) string {
	words := strings.Split(identifier, "_")
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `[_\s]\s*`)
}

// --- Numeric constant ---

// PatchLevelRule increments the value of `const int <NAME> = <digits>;`.
type PatchLevelRule struct {
	identifier string
	re         *regexp.Regexp
}

// NewPatchLevelRule returns a rule matching the integer constant identifier.
func NewPatchLevelRule(identifier string) (*PatchLevelRule, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("patch level rule: %w", errEmptyIdentifier)
	}
	pattern := `const\s+int\s+` + identifierPattern(identifier) + `\s*=\s*(\d+);`
	return &PatchLevelRule{
		identifier: identifier,
		re:         regexp.MustCompile(pattern),
	}, nil
}

func (r *PatchLevelRule) Name() string { return "patch-level:" + r.identifier }

// Apply replaces the first textual occurrence of the current value in the
// line with the incremented value. The replacement is not confined to the
// matched span, so an identical digit sequence earlier on the line is the one
// that changes.
func (r *PatchLevelRule) Apply(line string) (string, bool) {
	m := r.re.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	current, ok := new(big.Int).SetString(m[1], 10)
	if !ok {
		return line, false
	}
	next := new(big.Int).Add(current, big.NewInt(1))
	return strings.Replace(line, current.String(), next.String(), 1), true
}

// --- String constant ---

// BranchRule replaces `const char <NAME>[] = "...";` with a fresh
// declaration carrying the current branch name.
type BranchRule struct {
	identifier string
	re         *regexp.Regexp
	branch     func() string
}

// NewBranchRule returns a rule for the string-array constant identifier.
// branch is called at most once, the first time a line matches.
func NewBranchRule(identifier string, branch func() string) (*BranchRule, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("branch rule: %w", errEmptyIdentifier)
	}
	if branch == nil {
		return nil, errors.New("branch rule: branch source is nil")
	}
	pattern := `const\s+char\s+(` + regexp.QuoteMeta(identifier) + `\s*\[\s*\])\s*=\s*"[^"]*"\s*;`
	return &BranchRule{
		identifier: identifier,
		re:         regexp.MustCompile(pattern),
		branch:     sync.OnceValue(branch),
	}, nil
}

func (r *BranchRule) Name() string { return "branch:" + r.identifier }

// Apply rewrites the whole line. Indentation and anything after the
// semicolon are dropped; the declarator keeps its original spelling.
func (r *BranchRule) Apply(line string) (string, bool) {
	m := r.re.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return fmt.Sprintf("const char %s = \"%s\";\n", m[1], r.branch()), true
}
