// Package formats maps lockfile and manifest file names to the language and
// build tool they belong to.
package formats

import (
	"path"
	"strings"
)

// Format identifies which extractor understands a file's contents.
type Format int

const (
	Unknown Format = iota
	NpmJSON
	MavenPOM
	Bundler
	Cargo
	PipRequirements
	Yarn
	Pipenv
	GoSum
	GradleBuild

	ConanLock
	GoMod
	Composer
	Pnpm
	Pubspec
	TOMLLock
	NuGetLock
	NuGetConfig
	GradleLock
	Renv
	Vcpkg

	// Recognised but without an extractor.
	MixLock
	CabalFreeze
	StackLock
	GradleVerification
	DotnetDeps
)

var formatNames = map[Format]string{
	Unknown:            "unknown",
	NpmJSON:            "npm",
	MavenPOM:           "maven",
	Bundler:            "bundler",
	Cargo:              "cargo",
	PipRequirements:    "pip",
	Yarn:               "yarn",
	Pipenv:             "pipenv",
	GoSum:              "go-sum",
	GradleBuild:        "gradle-build",
	ConanLock:          "conan",
	GoMod:              "go-mod",
	Composer:           "composer",
	Pnpm:               "pnpm",
	Pubspec:            "pubspec",
	TOMLLock:           "toml-lock",
	NuGetLock:          "nuget-lock",
	NuGetConfig:        "nuget-config",
	GradleLock:         "gradle-lock",
	Renv:               "renv",
	Vcpkg:              "vcpkg",
	MixLock:            "mix",
	CabalFreeze:        "cabal",
	StackLock:          "stack",
	GradleVerification: "gradle-verification",
	DotnetDeps:         "dotnet-deps",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// Descriptor describes how to recognise a dependency file.
type Descriptor struct {
	Pattern  string // Exact base name, path fragment, or glob
	Language string
	Tool     string
	Format   Format
	PURLType string // Package URL type for components from this file (e.g. "npm")
}

// Known is the ordered identification table. Order matters: the substring
// fallback in Identify returns the first hit.
var Known = []Descriptor{
	{Pattern: "conan.lock", Language: "C/C++", Tool: "Conan", Format: ConanLock, PURLType: "conan"},
	{Pattern: "pubspec.lock", Language: "Dart", Tool: "Dart", Format: Pubspec, PURLType: "pub"},
	{Pattern: "mix.lock", Language: "Elixir", Tool: "Elixir", Format: MixLock, PURLType: "hex"},
	{Pattern: "go.mod", Language: "Go", Tool: "Go", Format: GoMod, PURLType: "golang"},
	{Pattern: "cabal.project.freeze", Language: "Haskell", Tool: "Cabal", Format: CabalFreeze, PURLType: "hackage"},
	{Pattern: "stack.yaml.lock", Language: "Haskell", Tool: "Stack", Format: StackLock, PURLType: "hackage"},
	{Pattern: "buildscript-gradle.lockfile", Language: "Java", Tool: "Gradle", Format: GradleLock, PURLType: "maven"},
	{Pattern: "gradle.lockfile", Language: "Java", Tool: "Gradle", Format: GradleLock, PURLType: "maven"},
	{Pattern: "gradle/verification-metadata.xml", Language: "Java", Tool: "Gradle", Format: GradleVerification, PURLType: "maven"},
	{Pattern: "pom.xml", Language: "Java", Tool: "Maven", Format: MavenPOM, PURLType: "maven"},
	{Pattern: "package-lock.json", Language: "Javascript", Tool: "npm", Format: NpmJSON, PURLType: "npm"},
	{Pattern: "pnpm-lock.yaml", Language: "Javascript", Tool: "pnpm", Format: Pnpm, PURLType: "npm"},
	{Pattern: "yarn.lock", Language: "Javascript", Tool: "Yarn", Format: Yarn, PURLType: "npm"},
	{Pattern: "deps.json", Language: ".NET", Tool: ".NET", Format: DotnetDeps, PURLType: "nuget"},
	{Pattern: "packages.config", Language: ".NET", Tool: "NuGet", Format: NuGetConfig, PURLType: "nuget"},
	{Pattern: "packages.lock.json", Language: ".NET", Tool: "NuGet", Format: NuGetLock, PURLType: "nuget"},
	{Pattern: "composer.lock", Language: "PHP", Tool: "Composer", Format: Composer, PURLType: "composer"},
	{Pattern: "Pipfile.lock", Language: "Python", Tool: "Pipenv", Format: Pipenv, PURLType: "pypi"},
	{Pattern: "poetry.lock", Language: "Python", Tool: "Poetry", Format: TOMLLock, PURLType: "pypi"},
	{Pattern: "requirements.txt", Language: "Python", Tool: "pip", Format: PipRequirements, PURLType: "pypi"},
	{Pattern: "pdm.lock", Language: "Python", Tool: "PDM", Format: TOMLLock, PURLType: "pypi"},
	{Pattern: "uv.lock", Language: "Python", Tool: "uv", Format: TOMLLock, PURLType: "pypi"},
	{Pattern: "renv.lock", Language: "R", Tool: "renv", Format: Renv, PURLType: "cran"},
	{Pattern: "Gemfile.lock", Language: "Ruby", Tool: "Bundler", Format: Bundler, PURLType: "gem"},
	{Pattern: "gems.locked", Language: "Ruby", Tool: "Bundler", Format: Bundler, PURLType: "gem"},
	{Pattern: "Cargo.lock", Language: "Rust", Tool: "Cargo", Format: Cargo, PURLType: "cargo"},

	// Manifests with an extractor that are not lockfiles.
	{Pattern: "package.json", Language: "Javascript", Tool: "npm", Format: NpmJSON, PURLType: "npm"},
	{Pattern: "go.sum", Language: "Go", Tool: "Go", Format: GoSum, PURLType: "golang"},
	{Pattern: "build.gradle", Language: "Java", Tool: "Gradle", Format: GradleBuild, PURLType: "maven"},
	{Pattern: "build.gradle.kts", Language: "Kotlin", Tool: "Gradle", Format: GradleBuild, PURLType: "maven"},
	{Pattern: "requirements*.txt", Language: "Python", Tool: "pip", Format: PipRequirements, PURLType: "pypi"},
	{Pattern: "vcpkg.json", Language: "C/C++", Tool: "vcpkg", Format: Vcpkg, PURLType: "generic"},
}

// Identify returns the descriptor for a file name. It tries an exact match
// first (glob patterns match here too), then falls back to the first pattern
// that contains the name or is contained in it.
func Identify(filename string) (Descriptor, bool) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return Descriptor{}, false
	}

	for _, d := range Known {
		if d.Pattern == filename {
			return d, true
		}
	}
	for _, d := range Known {
		if isGlob(d.Pattern) {
			if ok, _ := path.Match(d.Pattern, path.Base(filename)); ok {
				return d, true
			}
		}
	}

	for _, d := range Known {
		if isGlob(d.Pattern) {
			continue
		}
		if strings.Contains(filename, d.Pattern) || strings.Contains(d.Pattern, filename) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// IdentifyStrict is Identify without the reverse containment fallback: the
// name must equal a pattern, match a glob, or contain a pattern. "Gemfile"
// is not a lockfile even though "Gemfile.lock" contains it.
func IdentifyStrict(filename string) (Descriptor, bool) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return Descriptor{}, false
	}

	base := path.Base(filename)
	for _, d := range Known {
		if d.Pattern == filename || d.Pattern == base {
			return d, true
		}
	}
	for _, d := range Known {
		if isGlob(d.Pattern) {
			if ok, _ := path.Match(d.Pattern, base); ok {
				return d, true
			}
			continue
		}
		// Path fragments such as gradle/verification-metadata.xml are
		// matched against the whole name, plain patterns against the base.
		target := base
		if strings.Contains(d.Pattern, "/") {
			target = filename
		}
		if strings.Contains(target, d.Pattern) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Recognized reports whether Identify would find a descriptor for filename.
func Recognized(filename string) bool {
	_, ok := Identify(filename)
	return ok
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
