package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/exercise"
)

// Overridden with -ldflags "-X .../internal/cmd.Version=..." by release builds.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build details and the number of bundled exercises",
	// Skips config loading so version works with a broken classdb.yaml.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		u := newUI()
		u.Println(u.Header("classdb " + Version))
		for _, kv := range [][2]string{
			{"Commit", GitCommit},
			{"Built", BuildDate},
			{"Go", runtime.Version()},
			{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
			{"Exercises", fmt.Sprint(len(exercise.Names()))},
		} {
			u.Println(u.KeyValue(kv[0], kv[1]))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
}
