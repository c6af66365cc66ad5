package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/lockfile-loader/internal/ingest"
	"github.com/StinkyLord/lockfile-loader/internal/output"
	"github.com/StinkyLord/lockfile-loader/internal/resolver"
	"github.com/StinkyLord/lockfile-loader/internal/scanner"
)

var (
	flagApp          string
	flagIngestDir    string
	flagIngestFormat string
	flagIngestOutput string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest --app <id> <file-or-dir>...",
	Short: "Register every dependency as a technology of an application",
	Long: `Resolve every dependency found in the given files to a catalog technology,
creating missing technologies, and associate each with the application.

Files and dependencies are processed one at a time. Failures are reported per
row and never stop the batch.

Examples:
  lockfile-loader ingest --app 42 package-lock.json pom.xml
  lockfile-loader ingest --app 42 --dir ./monorepo --format json --output report.json`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&flagApp, "app", "a", "", "Target application id (see 'lockfile-loader apps')")
	ingestCmd.Flags().StringVarP(&flagIngestDir, "dir", "d", "", "Directory to walk for recognised dependency files")
	ingestCmd.Flags().StringVarP(&flagIngestFormat, "format", "f", "table", "Report format: table, json")
	ingestCmd.Flags().StringVarP(&flagIngestOutput, "output", "o", "-", "Report file path for json (use '-' for stdout)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if flagIngestFormat != "table" && flagIngestFormat != "json" {
		return fmt.Errorf("unsupported format %q (supported: table, json)", flagIngestFormat)
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	paths := args
	if flagIngestDir != "" {
		paths = append(paths, flagIngestDir)
	}
	files, err := scanner.Collect(paths)
	if err != nil {
		return err
	}

	client := env.catalogClient()
	res, err := resolver.New(client, env.logger, env.cfg.ResolverCacheSize)
	if err != nil {
		return err
	}
	orch := ingest.New(scanner.New(env.logger, 0), res, client, env.logger)

	session, err := orch.Run(cmd.Context(), flagApp, files)
	if err != nil {
		return fmt.Errorf("cannot start ingestion: %w", err)
	}

	if flagIngestFormat == "json" {
		if err := output.WriteSession(session, flagIngestOutput); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if flagIngestOutput != "-" {
			fmt.Fprintf(os.Stderr, "Report written to: %s\n", flagIngestOutput)
		}
		return nil
	}
	return output.WriteSessionTable(os.Stdout, session)
}
