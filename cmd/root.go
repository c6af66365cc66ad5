package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StinkyLord/lockfile-loader/internal/catalog"
	"github.com/StinkyLord/lockfile-loader/internal/config"
	"github.com/StinkyLord/lockfile-loader/internal/logging"
)

const toolVersion = "1.0.0"

var (
	flagConfig   string
	flagAPIURL   string
	flagLogLevel string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "lockfile-loader",
	Short: "Load lockfile dependencies into the technology catalog",
	Long: `lockfile-loader reads dependency lockfiles and manifests, resolves every
dependency to a technology record in the governance catalog (creating it when
missing) and associates it with an application.

Recognised files include:
  • JavaScript  — package-lock.json, package.json, yarn.lock, pnpm-lock.yaml
  • Java/Kotlin — pom.xml, build.gradle(.kts), gradle.lockfile
  • Python      — requirements*.txt, Pipfile.lock, poetry.lock, uv.lock, pdm.lock
  • Go          — go.mod, go.sum
  • Others      — Cargo.lock, Gemfile.lock, composer.lock, conan.lock,
                  pubspec.lock, packages.lock.json, packages.config, renv.lock,
                  vcpkg.json

Configuration is read from config.yaml, .env and the environment
(API_URL or VITE_API_URL, HTTP_TIMEOUT, LOG_LEVEL, RESOLVER_CACHE_SIZE).`,
	Version:       toolVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "Path to a YAML config file (default: ./config.yaml if present)")
	pf.StringVar(&flagAPIURL, "api-url", "", "Catalog API base URL (overrides API_URL)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output (same as --log-level debug)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtimeEnv is what every subcommand needs: resolved configuration and a
// logger built from it.
type runtimeEnv struct {
	cfg    *config.Config
	logger *zap.Logger
}

func setup() (*runtimeEnv, error) {
	cfg, err := config.Load(flagConfig, toolVersion)
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded",
		zap.String("api_url", cfg.APIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("resolver_cache_size", cfg.ResolverCacheSize))

	return &runtimeEnv{cfg: cfg, logger: logger}, nil
}

func (e *runtimeEnv) catalogClient() *catalog.Client {
	return catalog.NewClient(e.cfg.APIURL, e.logger, catalog.WithTimeout(e.cfg.HTTPTimeout))
}
