package strategies

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// NuGetLockStrategy parses packages.lock.json. Packages are grouped per
// target framework; a package listed under several frameworks is reported
// once, with the first resolved version.
type NuGetLockStrategy struct{}

func (s *NuGetLockStrategy) Name() string { return "nuget-lock" }

func (s *NuGetLockStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var lock struct {
		Dependencies json.RawMessage `json:"dependencies"`
	}
	if err := json.Unmarshal(contents, &lock); err != nil {
		return nil, fmt.Errorf("invalid packages.lock.json: %w", err)
	}

	frameworks, err := orderedMembers(lock.Dependencies)
	if err != nil {
		return nil, fmt.Errorf("invalid packages.lock.json dependencies: %w", err)
	}

	var deps []*model.Dependency
	seen := map[string]bool{}
	for _, fw := range frameworks {
		packages, err := orderedMembers(fw.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid framework %q: %w", fw.Key, err)
		}
		for _, p := range packages {
			if seen[p.Key] {
				continue
			}
			seen[p.Key] = true
			var entry struct {
				Resolved string `json:"resolved"`
			}
			_ = json.Unmarshal(p.Value, &entry)
			deps = append(deps, &model.Dependency{
				Name:    p.Key,
				Version: model.VersionOrLatest(entry.Resolved),
			})
		}
	}
	return deps, nil
}

// NuGetConfigStrategy parses the legacy packages.config XML file.
type NuGetConfigStrategy struct{}

func (s *NuGetConfigStrategy) Name() string { return "nuget-config" }

type nugetPackagesConfig struct {
	Packages []struct {
		ID      string `xml:"id,attr"`
		Version string `xml:"version,attr"`
	} `xml:"package"`
}

func (s *NuGetConfigStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var cfg nugetPackagesConfig
	dec := xml.NewDecoder(bytes.NewReader(contents))
	dec.Strict = false
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid packages.config XML: %w", err)
	}

	var deps []*model.Dependency
	for _, p := range cfg.Packages {
		if p.ID == "" {
			continue
		}
		deps = append(deps, &model.Dependency{
			Name:    p.ID,
			Version: model.VersionOrLatest(p.Version),
		})
	}
	return deps, nil
}
