package strategies

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// NpmStrategy parses package-lock.json and package.json. It reads the
// "dependencies" map, or "packages" when "dependencies" is absent.
type NpmStrategy struct{}

func (s *NpmStrategy) Name() string { return "npm" }

const nodeModulesPrefix = "node_modules/"

func (s *NpmStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var doc struct {
		Dependencies json.RawMessage `json:"dependencies"`
		Packages     json.RawMessage `json:"packages"`
	}
	if err := json.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("invalid npm JSON: %w", err)
	}

	section := doc.Dependencies
	if len(section) == 0 || string(section) == "null" {
		section = doc.Packages
	}
	members, err := orderedMembers(section)
	if err != nil {
		return nil, fmt.Errorf("invalid npm dependency map: %w", err)
	}

	var deps []*model.Dependency
	for _, m := range members {
		if m.Key == "" || strings.HasPrefix(m.Key, nodeModulesPrefix) {
			continue
		}
		deps = append(deps, &model.Dependency{
			Name:    m.Key,
			Version: npmVersion(m.Value),
		})
	}
	return deps, nil
}

// npmVersion returns the nested "version" of an object entry, or the
// literal value for plain entries such as {"left-pad": "^1.3.0"}.
func npmVersion(raw json.RawMessage) string {
	if isJSONObject(raw) {
		var entry struct {
			Version json.RawMessage `json:"version"`
		}
		if err := json.Unmarshal(raw, &entry); err == nil {
			return model.VersionOrLatest(flexibleString(entry.Version))
		}
		return model.VersionLatest
	}
	return model.VersionOrLatest(flexibleString(raw))
}
