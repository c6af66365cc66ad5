// Package strategies extracts (name, version) dependency pairs from the
// contents of lockfiles and manifests. There is one Extractor per
// formats.Format; the format is chosen once by formats.Identify.
package strategies

import (
	"go.uber.org/zap"

	"github.com/StinkyLord/lockfile-loader/internal/formats"
	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// Extractor is the interface every per-format parser implements.
// Extract must not panic on malformed input; it returns an error instead.
type Extractor interface {
	Name() string
	Extract(contents []byte) ([]*model.Dependency, error)
}

var registry = map[formats.Format]Extractor{
	formats.NpmJSON:         &NpmStrategy{},
	formats.MavenPOM:        &MavenStrategy{},
	formats.Bundler:         &BundlerStrategy{},
	formats.Cargo:           &CargoStrategy{},
	formats.PipRequirements: &RequirementsStrategy{},
	formats.Yarn:            &YarnStrategy{},
	formats.Pipenv:          &PipenvStrategy{},
	formats.GoSum:           &GoSumStrategy{},
	formats.GradleBuild:     &GradleBuildStrategy{},
	formats.ConanLock:       &ConanStrategy{},
	formats.GoMod:           &GoModStrategy{},
	formats.Composer:        &ComposerStrategy{},
	formats.Pnpm:            &PnpmStrategy{},
	formats.Pubspec:         &PubspecStrategy{},
	formats.TOMLLock:        &TOMLLockStrategy{},
	formats.NuGetLock:       &NuGetLockStrategy{},
	formats.NuGetConfig:     &NuGetConfigStrategy{},
	formats.GradleLock:      &GradleLockStrategy{},
	formats.Renv:            &RenvStrategy{},
	formats.Vcpkg:           &VcpkgStrategy{},
}

// For returns the extractor registered for a format, or nil.
func For(f formats.Format) Extractor {
	return registry[f]
}

// Extract identifies filename and runs the matching extractor over contents.
// It never fails: unrecognised files, formats without an extractor and parse
// errors all yield an empty slice. Parse errors are logged.
func Extract(filename string, contents []byte, logger *zap.Logger) []*model.Dependency {
	d, ok := formats.Identify(filename)
	if !ok {
		return nil
	}
	return ExtractFormat(d, filename, contents, logger)
}

// ExtractFormat runs the extractor for an already identified descriptor.
func ExtractFormat(d formats.Descriptor, filename string, contents []byte, logger *zap.Logger) []*model.Dependency {
	if logger == nil {
		logger = zap.NewNop()
	}
	ex := For(d.Format)
	if ex == nil {
		logger.Debug("No extractor for format",
			zap.String("file", filename),
			zap.Stringer("format", d.Format))
		return nil
	}

	deps, err := ex.Extract(contents)
	if err != nil {
		logger.Warn("Failed to parse dependency file",
			zap.String("file", filename),
			zap.String("extractor", ex.Name()),
			zap.Error(err))
		return nil
	}

	logger.Debug("Extracted dependencies",
		zap.String("file", filename),
		zap.String("extractor", ex.Name()),
		zap.Int("count", len(deps)))
	return deps
}
