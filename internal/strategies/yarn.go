package strategies

import (
	"regexp"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// YarnStrategy parses classic (v1) yarn.lock block headers:
//
//	"left-pad@^1.3.0":
//	  version "1.3.0"
type YarnStrategy struct{}

func (s *YarnStrategy) Name() string { return "yarn" }

var reYarnBlock = regexp.MustCompile(`(?m)^"?(@?[^@"\s]+)@.+:\s+version\s+"([^"]+)"`)

func (s *YarnStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var deps []*model.Dependency
	for _, m := range reYarnBlock.FindAllStringSubmatch(string(contents), -1) {
		deps = append(deps, &model.Dependency{Name: m[1], Version: m[2]})
	}
	return deps, nil
}
