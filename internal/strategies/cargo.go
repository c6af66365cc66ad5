package strategies

import (
	"regexp"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// CargoStrategy parses Cargo.lock by pairing each name = "..." with the next
// version = "..." that follows it.
type CargoStrategy struct{}

func (s *CargoStrategy) Name() string { return "cargo" }

var reCargoPackage = regexp.MustCompile(`(?s)name = "([^"]+)".*?version = "([^"]+)"`)

func (s *CargoStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var deps []*model.Dependency
	for _, m := range reCargoPackage.FindAllStringSubmatch(string(contents), -1) {
		deps = append(deps, &model.Dependency{Name: m[1], Version: m[2]})
	}
	return deps, nil
}
