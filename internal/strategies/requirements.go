package strategies

import (
	"regexp"
	"strings"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// RequirementsStrategy parses pip requirements files. Everything after the
// first comparison operator is kept as the version ("==2.31.0" -> "2.31.0",
// ">=1.0,<2.0" -> "1.0,<2.0").
type RequirementsStrategy struct{}

func (s *RequirementsStrategy) Name() string { return "pip" }

var reRequirement = regexp.MustCompile(`^([a-zA-Z0-9_-]+)([=><~!]+(.+))?`)

func (s *RequirementsStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var deps []*model.Dependency

	for _, raw := range lines(contents) {
		line := strings.TrimSpace(raw)
		// Options (-r, -e, --index-url) and comments.
		if line == "" || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "#") {
			continue
		}
		m := reRequirement.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		deps = append(deps, &model.Dependency{
			Name:    m[1],
			Version: model.VersionOrLatest(trimRequirementVersion(m[3])),
		})
	}
	return deps, nil
}

// trimRequirementVersion drops environment markers and trailing comments.
func trimRequirementVersion(v string) string {
	if i := strings.IndexAny(v, ";#"); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
