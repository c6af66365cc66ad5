package strategies

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// PubspecStrategy parses Dart's pubspec.lock "packages" map.
type PubspecStrategy struct{}

func (s *PubspecStrategy) Name() string { return "pubspec" }

func (s *PubspecStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("invalid pubspec.lock: %w", err)
	}

	var deps []*model.Dependency
	for _, p := range yamlPairs(yamlLookup(yamlRoot(&doc), "packages")) {
		deps = append(deps, &model.Dependency{
			Name:    p.Key,
			Version: model.VersionOrLatest(yamlScalar(yamlLookup(p.Value, "version"))),
		})
	}
	return deps, nil
}
