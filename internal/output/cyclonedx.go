// Package output renders extraction results and ingestion sessions.
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/StinkyLord/lockfile-loader/internal/model"
	"github.com/StinkyLord/lockfile-loader/internal/scanner"
)

// ---- CycloneDX 1.4 JSON schema types ----

type cdxBOM struct {
	BOMFormat    string         `json:"bomFormat"`
	SpecVersion  string         `json:"specVersion"`
	Version      int            `json:"version"`
	SerialNumber string         `json:"serialNumber"`
	Metadata     cdxMetadata    `json:"metadata"`
	Components   []cdxComponent `json:"components"`
}

type cdxMetadata struct {
	Timestamp string    `json:"timestamp"`
	Tools     []cdxTool `json:"tools"`
}

type cdxTool struct {
	Vendor  string `json:"vendor"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type cdxComponent struct {
	Type       string        `json:"type"`
	Group      string        `json:"group,omitempty"`
	Name       string        `json:"name"`
	Version    string        `json:"version"`
	PURL       string        `json:"purl,omitempty"`
	Properties []cdxProperty `json:"properties,omitempty"`
}

type cdxProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WriteCycloneDX serialises extracted dependencies as a CycloneDX 1.4 JSON
// SBOM and writes it to outputPath. If outputPath is "-", it writes to stdout.
func WriteCycloneDX(results []scanner.Result, outputPath string, toolVersion string) error {
	return writeJSON(outputPath, buildCycloneDX(results, toolVersion))
}

func buildCycloneDX(results []scanner.Result, toolVersion string) cdxBOM {
	byRef := map[string]*cdxComponent{}
	for _, r := range results {
		if !r.Recognized {
			continue
		}
		for _, d := range r.Dependencies {
			purl := PURL(r.Descriptor.PURLType, d)
			ref := purl
			if ref == "" {
				ref = d.Key()
			}

			comp, ok := byRef[ref]
			if !ok {
				comp = &cdxComponent{
					Type:    "library",
					Group:   d.GroupID,
					Name:    d.Name,
					Version: d.Version,
					PURL:    purl,
					Properties: []cdxProperty{
						{Name: "lockfile:language", Value: r.Descriptor.Language},
						{Name: "lockfile:tool", Value: r.Descriptor.Tool},
					},
				}
				if d.ArtifactID != "" {
					comp.Name = d.ArtifactID
				}
				byRef[ref] = comp
			}
			comp.Properties = append(comp.Properties, cdxProperty{Name: "lockfile:file", Value: r.File.Name})
		}
	}

	comps := make([]cdxComponent, 0, len(byRef))
	for _, c := range byRef {
		comps = append(comps, *c)
	}
	// Sort components by name for deterministic output
	sort.Slice(comps, func(i, j int) bool {
		if comps[i].Name != comps[j].Name {
			return comps[i].Name < comps[j].Name
		}
		if comps[i].Version != comps[j].Version {
			return comps[i].Version < comps[j].Version
		}
		return comps[i].PURL < comps[j].PURL
	})

	return cdxBOM{
		BOMFormat:    "CycloneDX",
		SpecVersion:  "1.4",
		Version:      1,
		SerialNumber: "urn:uuid:" + uuid.NewString(),
		Metadata: cdxMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Tools: []cdxTool{
				{
					Vendor:  "StinkyLord",
					Name:    "lockfile-loader",
					Version: toolVersion,
				},
			},
		},
		Components: comps,
	}
}

// PURL builds a package URL for d. The version is omitted when the manifest
// did not pin one. An empty purlType yields "".
//
//	PURL("npm", {Name: "@types/node", Version: "20.1.0"}) == "pkg:npm/%40types/node@20.1.0"
//	PURL("maven", {GroupID: "org.x", ArtifactID: "core", Version: "1.0"}) == "pkg:maven/org.x/core@1.0"
func PURL(purlType string, d *model.Dependency) string {
	if purlType == "" || d.Name == "" {
		return ""
	}

	name := d.Name
	switch purlType {
	case "maven":
		group, artifact := d.GroupID, d.ArtifactID
		if group == "" || artifact == "" {
			parts := strings.SplitN(d.Name, ":", 3)
			if len(parts) >= 2 {
				group, artifact = parts[0], parts[1]
			}
		}
		if group != "" && artifact != "" {
			name = group + "/" + artifact
		}
	case "npm":
		if strings.HasPrefix(name, "@") {
			name = "%40" + name[1:]
		}
	case "pypi":
		name = strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	}

	purl := fmt.Sprintf("pkg:%s/%s", purlType, name)
	switch d.Version {
	case "", model.VersionLatest, model.VersionManaged:
		return purl
	}
	version := d.Version
	if purlType == "golang" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return purl + "@" + version
}
