package strategies

import (
	"regexp"
	"strings"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// GradleBuildStrategy parses implementation declarations in build.gradle
// (Groovy) and build.gradle.kts (Kotlin DSL):
//
//	implementation 'com.google.guava:guava:32.1.2-jre'
//	implementation("com.squareup.okhttp3:okhttp:4.12.0")
type GradleBuildStrategy struct{}

func (s *GradleBuildStrategy) Name() string { return "gradle-build" }

var (
	reGradleGroovy = regexp.MustCompile(`implementation\s+['"]([^:]+):([^:]+):([^'"]+)['"]`)
	reGradleKotlin = regexp.MustCompile(`implementation\s*\(\s*['"]([^:]+):([^:]+):([^'"]+)['"]\s*\)`)
)

func (s *GradleBuildStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	var deps []*model.Dependency

	for _, line := range lines(contents) {
		m := reGradleGroovy.FindStringSubmatch(line)
		if m == nil {
			m = reGradleKotlin.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}
		deps = append(deps, &model.Dependency{
			Name:    strings.TrimSpace(m[1]) + ":" + strings.TrimSpace(m[2]),
			Version: m[3],
		})
	}
	return deps, nil
}
