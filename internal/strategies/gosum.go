package strategies

import (
	"regexp"
	"strings"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// GoSumStrategy parses go.sum. Each module usually appears twice (the module
// zip hash and its go.mod hash); only the first line per module is kept.
type GoSumStrategy struct{}

func (s *GoSumStrategy) Name() string { return "go-sum" }

var reGoSumLine = regexp.MustCompile(`^(\S+)\s+v(\S+)`)

func (s *GoSumStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var deps []*model.Dependency
	seen := map[string]bool{}

	for _, raw := range lines(contents) {
		m := reGoSumLine.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		deps = append(deps, &model.Dependency{
			Name:    m[1],
			Version: strings.TrimSuffix(m[2], "/go.mod"),
		})
	}
	return deps, nil
}
