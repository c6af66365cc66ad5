package strategies

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// TOMLLockStrategy parses the [[package]] arrays shared by poetry.lock,
// uv.lock and pdm.lock.
type TOMLLockStrategy struct{}

func (s *TOMLLockStrategy) Name() string { return "toml-lock" }

type tomlLock struct {
	Package []struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

func (s *TOMLLockStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var lock tomlLock
	if _, err := toml.Decode(string(contents), &lock); err != nil {
		return nil, fmt.Errorf("invalid TOML lockfile: %w", err)
	}

	deps := make([]*model.Dependency, 0, len(lock.Package))
	for _, p := range lock.Package {
		if p.Name == "" {
			continue
		}
		deps = append(deps, &model.Dependency{
			Name:    p.Name,
			Version: model.VersionOrLatest(p.Version),
		})
	}
	return deps, nil
}
