package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nanoclass", displayVersion(version))
	},
}

// displayVersion normalizes release tags ("1.2" becomes "v1.2.0") and
// passes anything else through unchanged.
func displayVersion(v string) string {
	tag := v
	if tag != "" && tag[0] != 'v' {
		tag = "v" + tag
	}
	if semver.IsValid(tag) {
		return semver.Canonical(tag)
	}
	return v
}
