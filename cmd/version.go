package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Overridable at build time via -ldflags; anything left empty falls back to
// what the Go module system recorded in the binary.
var (
	Version   string
	GitCommit string
	BuildDate string
)

// buildDetails resolves the version triple, preferring ldflags values and
// filling the rest from debug.ReadBuildInfo.
func buildDetails() (version, commit, date string) {
	version, commit, date = Version, GitCommit, BuildDate

	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "" {
					commit = setting.Value
				}
			case "vcs.time":
				if date == "" {
					date = setting.Value
				}
			}
		}
	}

	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return version, commit, date
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		version, commit, date := buildDetails()

		verbose, _ := cmd.Flags().GetBool("verbose")
		if !verbose {
			fmt.Printf("validpoint version %s\n", version)
			return
		}

		fmt.Printf("validpoint %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		fmt.Printf("  go:     %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
}
