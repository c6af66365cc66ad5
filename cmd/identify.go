package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/lockfile-loader/internal/output"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <filename>...",
	Short: "Show which language and tool a file name maps to",
	Long: `Show which language and tool a file name maps to. Names are matched
exactly first, then by substring; files are not read.

Examples:
  lockfile-loader identify pom.xml yarn.lock
  lockfile-loader identify services/api/go.sum`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.WriteIdentifications(os.Stdout, args)
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}
