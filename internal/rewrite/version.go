// internal/rewrite/version.go
package rewrite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// VersionRule bumps the patch component of a Go declaration such as
// `const Version = "0.2.1"`. Prerelease and build suffixes are not matched.
type VersionRule struct {
	identifier string
	re         *regexp.Regexp
}

// NewVersionRule returns a rule for the Go string constant identifier.
func NewVersionRule(identifier string) (*VersionRule, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("version rule: %w", errEmptyIdentifier)
	}
	// Captures: prefix, optional "v", major.minor., patch, closing quote.
	pattern := `^(\s*const\s+` + regexp.QuoteMeta(identifier) + `\s*=\s*['"])(v?)(\d+\.\d+\.)(\d+)(['"])`
	return &VersionRule{
		identifier: identifier,
		re:         regexp.MustCompile(pattern),
	}, nil
}

func (r *VersionRule) Name() string { return "version:" + r.identifier }

// Apply rewrites only the patch digits. Versions that are not valid semver
// (leading zeros, for instance) are left alone.
func (r *VersionRule) Apply(line string) (string, bool) {
	m := r.re.FindStringSubmatchIndex(line)
	if m == nil {
		return line, false
	}
	prefix := line[m[2]:m[3]]
	v := line[m[4]:m[5]]
	majorMinor := line[m[6]:m[7]]
	patchStr := line[m[8]:m[9]]

	if !semver.IsValid("v" + majorMinor + patchStr) {
		return line, false
	}
	patch, err := strconv.Atoi(patchStr)
	if err != nil {
		return line, false
	}
	return prefix + v + majorMinor + strconv.Itoa(patch+1) + line[m[10]:], true
}
