// Command increment-patch-level bumps the PATCH_LEVEL constant in a source
// file. It is meant to run from a git pre-commit hook:
//
//	increment-patch-level VCPU32-Version.h
package main

import (
	"os"

	"github.com/gagin/patchlevel/internal/cli"
)

func main() {
	os.Exit(cli.Run(cli.IncrementPatchLevel, os.Args[1:], os.Stdout, os.Stderr))
}
