// Package model defines the data structures shared by the ingestion pipeline.
package model

import "strings"

// Version sentinels used when a manifest does not pin a version.
const (
	VersionLatest  = "latest"  // no version specified
	VersionManaged = "managed" // resolved by the build tool (Maven dependencyManagement)
)

// Dependency is a single (name, version) pair extracted from a lockfile or
// manifest. It only lives for the duration of one ingestion run.
type Dependency struct {
	Name    string // Display name; "group:artifact:version" for Maven entries
	Version string // Literal version token, or one of the sentinels above

	// Maven coordinates, set only by the POM extractor. ArtifactID drives
	// sigla generation when present.
	GroupID    string
	ArtifactID string
}

// Key returns a case-insensitive deduplication key for the dependency.
// "Lodash@4.17.21" and "lodash@4.17.21" collapse to the same key while
// different versions of the same package stay distinct.
func (d *Dependency) Key() string {
	return strings.ToLower(d.Name) + "@" + d.Version
}

// VersionOrLatest returns the version, substituting VersionLatest when empty.
func VersionOrLatest(v string) string {
	if strings.TrimSpace(v) == "" {
		return VersionLatest
	}
	return v
}
