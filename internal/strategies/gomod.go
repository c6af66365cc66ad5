package strategies

import (
	"fmt"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// GoModStrategy parses the require directives of a go.mod file. Versions
// drop the leading "v" to match the go.sum extractor.
type GoModStrategy struct{}

func (s *GoModStrategy) Name() string { return "go-mod" }

func (s *GoModStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	f, err := modfile.ParseLax("go.mod", contents, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid go.mod: %w", err)
	}

	deps := make([]*model.Dependency, 0, len(f.Require))
	for _, r := range f.Require {
		deps = append(deps, &model.Dependency{
			Name:    r.Mod.Path,
			Version: model.VersionOrLatest(strings.TrimPrefix(r.Mod.Version, "v")),
		})
	}
	return deps, nil
}
