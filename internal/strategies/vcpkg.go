package strategies

import (
	"encoding/json"
	"fmt"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// VcpkgStrategy parses vcpkg.json manifests. Dependencies may be plain
// strings or objects; a version comes from "overrides" first, then the
// dependency's "version>=" constraint.
type VcpkgStrategy struct{}

func (s *VcpkgStrategy) Name() string { return "vcpkg" }

type vcpkgDependency struct {
	Name       string `json:"name"`
	MinVersion string `json:"version>="`
}

type vcpkgOverride struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *VcpkgStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var raw struct {
		Dependencies []json.RawMessage `json:"dependencies"`
		Overrides    []vcpkgOverride   `json:"overrides"`
	}
	if err := json.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("invalid vcpkg.json: %w", err)
	}

	pinned := make(map[string]string, len(raw.Overrides))
	for _, o := range raw.Overrides {
		pinned[o.Name] = o.Version
	}

	var deps []*model.Dependency
	for _, dep := range raw.Dependencies {
		var obj vcpkgDependency
		// Try as string first
		if err := json.Unmarshal(dep, &obj.Name); err != nil {
			if err := json.Unmarshal(dep, &obj); err != nil {
				continue
			}
		}
		if obj.Name == "" {
			continue
		}

		version := pinned[obj.Name]
		if version == "" {
			version = obj.MinVersion
		}
		deps = append(deps, &model.Dependency{
			Name:    obj.Name,
			Version: model.VersionOrLatest(version),
		})
	}
	return deps, nil
}
