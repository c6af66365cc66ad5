package strategies

import (
	"encoding/json"
	"fmt"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// ComposerStrategy parses composer.lock "packages" and "packages-dev".
type ComposerStrategy struct{}

func (s *ComposerStrategy) Name() string { return "composer" }

type composerPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *ComposerStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var lock struct {
		Packages    []composerPackage `json:"packages"`
		PackagesDev []composerPackage `json:"packages-dev"`
	}
	if err := json.Unmarshal(contents, &lock); err != nil {
		return nil, fmt.Errorf("invalid composer.lock JSON: %w", err)
	}

	var deps []*model.Dependency
	for _, pkgs := range [][]composerPackage{lock.Packages, lock.PackagesDev} {
		for _, p := range pkgs {
			if p.Name == "" {
				continue
			}
			deps = append(deps, &model.Dependency{
				Name:    p.Name,
				Version: model.VersionOrLatest(p.Version),
			})
		}
	}
	return deps, nil
}
