package strategies

import (
	"encoding/json"
	"fmt"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// RenvStrategy parses renv.lock "Packages".
type RenvStrategy struct{}

func (s *RenvStrategy) Name() string { return "renv" }

func (s *RenvStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var lock struct {
		Packages json.RawMessage `json:"Packages"`
	}
	if err := json.Unmarshal(contents, &lock); err != nil {
		return nil, fmt.Errorf("invalid renv.lock JSON: %w", err)
	}

	members, err := orderedMembers(lock.Packages)
	if err != nil {
		return nil, fmt.Errorf("invalid renv.lock packages: %w", err)
	}

	deps := make([]*model.Dependency, 0, len(members))
	for _, m := range members {
		var entry struct {
			Package string `json:"Package"`
			Version string `json:"Version"`
		}
		_ = json.Unmarshal(m.Value, &entry)
		name := entry.Package
		if name == "" {
			name = m.Key
		}
		deps = append(deps, &model.Dependency{
			Name:    name,
			Version: model.VersionOrLatest(entry.Version),
		})
	}
	return deps, nil
}
