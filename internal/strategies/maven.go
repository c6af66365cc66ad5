package strategies

import (
	"regexp"
	"strings"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// MavenStrategy scans pom.xml text in two passes: <properties> first, then
// every <dependency> block, substituting ${prop} version references.
type MavenStrategy struct{}

func (s *MavenStrategy) Name() string { return "maven" }

var (
	reMavenProperties = regexp.MustCompile(`(?s)<properties>(.*?)</properties>`)
	// RE2 has no back-references; the closing tag is compared in code.
	reMavenProperty   = regexp.MustCompile(`<([^>/\s]+)>([^<]*)</([^>]+)>`)
	reMavenDependency = regexp.MustCompile(`(?s)<dependency>(.*?)</dependency>`)
	reMavenGroupID    = regexp.MustCompile(`<groupId>(.*?)</groupId>`)
	reMavenArtifactID = regexp.MustCompile(`<artifactId>(.*?)</artifactId>`)
	reMavenVersion    = regexp.MustCompile(`<version>(.*?)</version>`)
	reMavenPropRef    = regexp.MustCompile(`\$\{([^}]+)\}`)
)

func (s *MavenStrategy) Extract(contents []byte) ([]*model.Dependency, error) {
	text := string(contents)
	props := parseMavenProperties(text)

	var deps []*model.Dependency
	for _, block := range reMavenDependency.FindAllStringSubmatch(text, -1) {
		body := block[1]
		groupID := firstSubmatch(reMavenGroupID, body)
		artifactID := firstSubmatch(reMavenArtifactID, body)
		if groupID == "" || artifactID == "" {
			continue
		}

		version := model.VersionManaged
		if m := reMavenVersion.FindStringSubmatch(body); m != nil {
			version = resolveMavenVersion(strings.TrimSpace(m[1]), props)
		}

		deps = append(deps, &model.Dependency{
			Name:       groupID + ":" + artifactID + ":" + version,
			Version:    version,
			GroupID:    groupID,
			ArtifactID: artifactID,
		})
	}
	return deps, nil
}

// parseMavenProperties reads the first <properties> block into a
// name -> value table.
func parseMavenProperties(text string) map[string]string {
	props := map[string]string{}
	block := reMavenProperties.FindStringSubmatch(text)
	if block == nil {
		return props
	}
	for _, m := range reMavenProperty.FindAllStringSubmatch(block[1], -1) {
		if m[1] != m[3] {
			continue
		}
		props[m[1]] = m[2]
	}
	return props
}

// resolveMavenVersion substitutes a ${prop} reference from the properties
// table. Unknown properties and literal versions are returned unchanged.
func resolveMavenVersion(version string, props map[string]string) string {
	if !strings.Contains(version, "${") {
		return version
	}
	m := reMavenPropRef.FindStringSubmatch(version)
	if m == nil {
		return version
	}
	if v, ok := props[m[1]]; ok && v != "" {
		return v
	}
	return version
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
