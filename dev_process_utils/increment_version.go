// Command increment_version bumps the patch component of the tools' Version
// constant. Run it from the repository root before tagging a release:
//
//	go run ./dev_process_utils [version_file]
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gagin/patchlevel/internal/rewrite"
	"github.com/gagin/patchlevel/internal/updater"
)

const defaultVersionFile = "internal/cli/version.go"

func updateVersionInFile(versionFile string) bool {
	rule, err := rewrite.NewVersionRule("Version")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}

	res, err := updater.Update(versionFile, []rewrite.Rule{rule}, updater.Options{})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("Error: File '%s' not found.\n", versionFile)
		} else {
			fmt.Printf("Error: Could not update file '%s': %v\n", versionFile, err)
		}
		return false
	}
	// The file was rewritten unchanged; that is still a failure for a release bump.
	if len(res.Changes) == 0 {
		fmt.Println("Error: Version constant not found.")
		return false
	}

	fmt.Printf("Version updated in %s\n", versionFile)
	return true
} // End of updateVersionInFile

func main() {
	versionFile := defaultVersionFile
	if len(os.Args) > 1 {
		versionFile = os.Args[1]
	}
	if updateVersionInFile(versionFile) {
		os.Exit(0) // Success
	} else {
		os.Exit(1) // Failure
	}
} // End of main
