package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/lockfile-loader/internal/output"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the applications dependencies can be associated with",
	Args:  cobra.NoArgs,
	RunE:  runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
}

func runApps(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	apps, err := env.catalogClient().ListApplications(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}
	return output.WriteApplications(os.Stdout, apps)
}
