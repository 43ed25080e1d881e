package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"minic/pkg/version"
)

var versionRequire string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Long: `Prints the version. With --require, fails unless the version satisfies
the given constraint, e.g. ">= 0.4" or "^0.4".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "minic v%s\n", version.Current())
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return version.Check(versionRequire)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVar(&versionRequire, "require", "", "semantic-version constraint the tool must satisfy")
}
