// Command update-sim-version bumps SIM_PATCH_LEVEL and stamps SIM_GIT_BRANCH
// with the checked-out git branch ("Unknown" outside a repository):
//
//	update-sim-version VCPU32-SimVersion.h
package main

import (
	"os"

	"github.com/gagin/patchlevel/internal/cli"
)

func main() {
	os.Exit(cli.Run(cli.UpdateSimVersion, os.Args[1:], os.Stdout, os.Stderr))
}
