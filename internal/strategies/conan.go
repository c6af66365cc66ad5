package strategies

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// ConanStrategy parses conan.lock files, both the v1 graph_lock format and
// the flat v2 format.
type ConanStrategy struct{}

func (s *ConanStrategy) Name() string { return "conan" }

// ---- conan.lock v1 JSON structures ----

type conanLockV1 struct {
	GraphLock struct {
		Nodes map[string]conanLockV1Node `json:"nodes"`
	} `json:"graph_lock"`
}

type conanLockV1Node struct {
	Ref string `json:"ref"` // e.g. "boost/1.82.0#abc123"
}

// conanLockV2 is the flat format written by Conan 2.
type conanLockV2 struct {
	Requires       []string `json:"requires"`
	BuildRequires  []string `json:"build_requires"`
	PythonRequires []string `json:"python_requires"`
}

// reConanRef matches Conan package references like "boost/1.82.0" or
// "openssl/3.1.4@conan/stable#rev%1700000000.0".
// Groups: 1=name, 2=version
var reConanRef = regexp.MustCompile(`^([^/\s]+)/([^@#\s]+)(?:@[^\s#]*)?(?:#\S+)?$`)

func (s *ConanStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var v1 conanLockV1
	if err := json.Unmarshal(contents, &v1); err != nil {
		return nil, fmt.Errorf("invalid conan.lock JSON: %w", err)
	}

	if len(v1.GraphLock.Nodes) > 0 {
		// Node "0" is the consumer project; the rest are packages. Walk them
		// in numeric index order so output is deterministic.
		indices := make([]string, 0, len(v1.GraphLock.Nodes))
		for idx := range v1.GraphLock.Nodes {
			indices = append(indices, idx)
		}
		sort.Slice(indices, func(i, j int) bool {
			a, errA := strconv.Atoi(indices[i])
			b, errB := strconv.Atoi(indices[j])
			if errA != nil || errB != nil {
				return indices[i] < indices[j]
			}
			return a < b
		})

		var deps []*model.Dependency
		for _, idx := range indices {
			if d := conanRefToDependency(v1.GraphLock.Nodes[idx].Ref); d != nil {
				deps = append(deps, d)
			}
		}
		return deps, nil
	}

	var v2 conanLockV2
	if err := json.Unmarshal(contents, &v2); err != nil {
		return nil, fmt.Errorf("invalid conan.lock JSON: %w", err)
	}
	var deps []*model.Dependency
	for _, refs := range [][]string{v2.Requires, v2.BuildRequires, v2.PythonRequires} {
		for _, ref := range refs {
			if d := conanRefToDependency(ref); d != nil {
				deps = append(deps, d)
			}
		}
	}
	return deps, nil
}

// conanRefToDependency parses "name/version@user/channel#revision"; all parts
// after name/version are optional. Returns nil for unparseable references.
func conanRefToDependency(ref string) *model.Dependency {
	m := reConanRef.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return nil
	}
	return &model.Dependency{Name: m[1], Version: m[2]}
}
