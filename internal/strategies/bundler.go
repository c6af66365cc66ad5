package strategies

import (
	"regexp"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// BundlerStrategy parses Gemfile.lock / gems.locked specs. Only the
// four-space indented "name (version)" lines are resolved gems; the deeper
// indented lines are their requirements.
type BundlerStrategy struct{}

func (s *BundlerStrategy) Name() string { return "bundler" }

var reGemSpec = regexp.MustCompile(`(?m)^[ \t]{4}(\S+)\s+\(([^)]+)\)`)

func (s *BundlerStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var deps []*model.Dependency
	for _, m := range reGemSpec.FindAllStringSubmatch(string(contents), -1) {
		deps = append(deps, &model.Dependency{Name: m[1], Version: m[2]})
	}
	return deps, nil
}
