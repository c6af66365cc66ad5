package strategies

import (
	"strings"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// GradleLockStrategy parses gradle.lockfile and buildscript-gradle.lockfile:
//
//	com.google.guava:guava:32.1.2-jre=compileClasspath,runtimeClasspath
type GradleLockStrategy struct{}

func (s *GradleLockStrategy) Name() string { return "gradle-lock" }

func (s *GradleLockStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var deps []*model.Dependency

	for _, raw := range lines(contents) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "empty=") {
			continue
		}
		coords, _, _ := strings.Cut(line, "=")
		parts := strings.Split(coords, ":")
		if len(parts) != 3 {
			continue
		}
		deps = append(deps, &model.Dependency{
			Name:    parts[0] + ":" + parts[1],
			Version: parts[2],
			GroupID: parts[0],
		})
	}
	return deps, nil
}
