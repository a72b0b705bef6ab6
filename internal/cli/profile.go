// internal/cli/profile.go
package cli

import (
	"github.com/gagin/patchlevel/internal/branch"
	"github.com/gagin/patchlevel/internal/config"
	"github.com/gagin/patchlevel/internal/rewrite"
)

// Profile names a tool and the declarations it rewrites by default.
type Profile struct {
	Name        string
	Description string
	Defaults    config.Config
}

// IncrementPatchLevel bumps `const int PATCH_LEVEL = N;`.
var IncrementPatchLevel = Profile{
	Name:        "increment-patch-level",
	Description: "Increments the PATCH_LEVEL integer constant in a source file, in place.",
	Defaults: config.Config{
		PatchIdentifiers: []string{"PATCH_LEVEL"},
		BranchIdentifier: config.Str(""),
		FallbackBranch:   config.Str(branch.Fallback),
	},
}

// UpdateSimVersion bumps SIM_PATCH_LEVEL and stamps SIM_GIT_BRANCH with the
// checked-out git branch.
var UpdateSimVersion = Profile{
	Name:        "update-sim-version",
	Description: "Increments SIM_PATCH_LEVEL and writes the current git branch into SIM_GIT_BRANCH, in place.",
	Defaults: config.Config{
		PatchIdentifiers: []string{"SIM_PATCH_LEVEL"},
		BranchIdentifier: config.Str("SIM_GIT_BRANCH"),
		FallbackBranch:   config.Str(branch.Fallback),
	},
}

// BuildRules turns a resolved config into the ordered rule list: every
// patch-level identifier first, then the branch identifier if one is set.
func BuildRules(cfg config.Config, currentBranch func() string) ([]rewrite.Rule, error) {
	rules := make([]rewrite.Rule, 0, len(cfg.PatchIdentifiers)+1)
	for _, id := range cfg.PatchIdentifiers {
		r, err := rewrite.NewPatchLevelRule(id)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if cfg.BranchIdentifier != nil && *cfg.BranchIdentifier != "" {
		r, err := rewrite.NewBranchRule(*cfg.BranchIdentifier, currentBranch)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}
