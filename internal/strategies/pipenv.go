package strategies

import (
	"encoding/json"
	"fmt"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// PipenvStrategy parses Pipfile.lock. The "default" and "develop" sections
// are merged; a package present in both keeps its first position and takes
// the "develop" version.
type PipenvStrategy struct{}

func (s *PipenvStrategy) Name() string { return "pipenv" }

func (s *PipenvStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var doc struct {
		Default json.RawMessage `json:"default"`
		Develop json.RawMessage `json:"develop"`
	}
	if err := json.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("invalid Pipfile.lock JSON: %w", err)
	}

	var deps []*model.Dependency
	index := map[string]int{}
	for _, section := range []json.RawMessage{doc.Default, doc.Develop} {
		members, err := orderedMembers(section)
		if err != nil {
			return nil, fmt.Errorf("invalid Pipfile.lock section: %w", err)
		}
		for _, m := range members {
			var entry struct {
				Version string `json:"version"`
			}
			_ = json.Unmarshal(m.Value, &entry)
			version := model.VersionOrLatest(entry.Version)

			if i, ok := index[m.Key]; ok {
				deps[i].Version = version
				continue
			}
			index[m.Key] = len(deps)
			deps = append(deps, &model.Dependency{Name: m.Key, Version: version})
		}
	}
	return deps, nil
}
