package strategies

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// PnpmStrategy parses pnpm-lock.yaml. Direct dependencies come from the
// importers (lockfile v6+) or the top-level dependency maps (v5). When
// neither lists anything the "packages" keys are used instead.
type PnpmStrategy struct{}

func (s *PnpmStrategy) Name() string { return "pnpm" }

var pnpmSections = []string{"dependencies", "devDependencies", "optionalDependencies"}

func (s *PnpmStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("invalid pnpm-lock.yaml: %w", err)
	}
	root := yamlRoot(&doc)
	if root == nil {
		return nil, nil
	}

	var deps []*model.Dependency
	seen := map[string]bool{}
	add := func(name, version string) {
		d := &model.Dependency{Name: name, Version: model.VersionOrLatest(stripPeerSuffix(version))}
		if name == "" || seen[d.Key()] {
			return
		}
		seen[d.Key()] = true
		deps = append(deps, d)
	}
	collect := func(section *yaml.Node) {
		for _, p := range yamlPairs(section) {
			version := yamlScalar(p.Value)
			if p.Value.Kind == yaml.MappingNode {
				version = yamlScalar(yamlLookup(p.Value, "version"))
			}
			add(p.Key, version)
		}
	}

	for _, importer := range yamlPairs(yamlLookup(root, "importers")) {
		for _, sec := range pnpmSections {
			collect(yamlLookup(importer.Value, sec))
		}
	}
	for _, sec := range pnpmSections {
		collect(yamlLookup(root, sec))
	}

	if len(deps) == 0 {
		for _, p := range yamlPairs(yamlLookup(root, "packages")) {
			add(parsePnpmPackageKey(p.Key))
		}
	}
	return deps, nil
}

// parsePnpmPackageKey splits a "packages" key into name and version:
// "/@babel/core@7.23.0" (v6), "lodash@4.17.21" (v9), "/lodash/4.17.21" (v5).
func parsePnpmPackageKey(key string) (string, string) {
	k := stripPeerSuffix(strings.TrimPrefix(key, "/"))
	if at := strings.LastIndex(k, "@"); at > 0 {
		return k[:at], k[at+1:]
	}
	if slash := strings.LastIndex(k, "/"); slash > 0 {
		return k[:slash], k[slash+1:]
	}
	return k, ""
}

// stripPeerSuffix removes the peer-dependency suffix pnpm appends to
// resolved versions, e.g. "18.2.0(react@18.2.0)" -> "18.2.0".
func stripPeerSuffix(v string) string {
	if i := strings.Index(v, "("); i >= 0 {
		return v[:i]
	}
	return v
}
