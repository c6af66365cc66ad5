package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StinkyLord/lockfile-loader/internal/output"
	"github.com/StinkyLord/lockfile-loader/internal/scanner"
)

var (
	flagExtractFormat string
	flagExtractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file-or-dir>...",
	Short: "Extract dependencies without contacting the catalog",
	Long: `Extract (name, version) pairs from lockfiles and manifests. Directories
are walked for recognised files, skipping .git, node_modules, vendor and
target.

Examples:
  lockfile-loader extract package-lock.json pom.xml
  lockfile-loader extract . --format json
  lockfile-loader extract ./services --format cyclonedx --output sbom.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&flagExtractFormat, "format", "f", "table", "Output format: table, json, cyclonedx")
	extractCmd.Flags().StringVarP(&flagExtractOutput, "output", "o", "-", "Output file path for json and cyclonedx (use '-' for stdout)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	files, err := scanner.Collect(args)
	if err != nil {
		return err
	}
	results := scanner.New(env.logger, 0).Scan(files)
	env.logger.Info("Extraction finished",
		zap.Int("files", len(files)),
		zap.Int("dependencies", len(scanner.Unique(results))))

	switch flagExtractFormat {
	case "table":
		return output.WriteExtractionTable(os.Stdout, results)
	case "json":
		err = output.WriteExtraction(results, flagExtractOutput)
	case "cyclonedx", "cdx":
		err = output.WriteCycloneDX(results, flagExtractOutput, toolVersion)
	default:
		return fmt.Errorf("unsupported format %q (supported: table, json, cyclonedx)", flagExtractFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s output: %w", flagExtractFormat, err)
	}

	if flagExtractOutput != "-" {
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", flagExtractOutput)
	}
	return nil
}
