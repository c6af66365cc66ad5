package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/StinkyLord/lockfile-loader/internal/ingest"
	"github.com/StinkyLord/lockfile-loader/internal/scanner"
)

type sessionReport struct {
	*ingest.Session
	Summary ingest.Summary `json:"summary"`
}

// WriteSession writes the session, its rows and summary as indented JSON.
// If outputPath is "-", it writes to stdout.
func WriteSession(session *ingest.Session, outputPath string) error {
	return writeJSON(outputPath, sessionReport{Session: session, Summary: session.Summary()})
}

type extractedFile struct {
	File         string         `json:"file"`
	Recognized   bool           `json:"recognized"`
	Language     string         `json:"language,omitempty"`
	Tool         string         `json:"tool,omitempty"`
	Dependencies []extractedDep `json:"dependencies"`
}

type extractedDep struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	GroupID    string `json:"groupId,omitempty"`
	ArtifactID string `json:"artifactId,omitempty"`
	PURL       string `json:"purl,omitempty"`
}

// WriteExtraction writes one JSON entry per file with the dependencies
// extracted from it.
//
// Example output:
//
//	[
//	  {
//	    "file": "web/package-lock.json",
//	    "recognized": true,
//	    "language": "Javascript",
//	    "tool": "npm",
//	    "dependencies": [
//	      { "name": "left-pad", "version": "1.3.0", "purl": "pkg:npm/left-pad@1.3.0" }
//	    ]
//	  }
//	]
func WriteExtraction(results []scanner.Result, outputPath string) error {
	files := make([]extractedFile, 0, len(results))
	for _, r := range results {
		f := extractedFile{
			File:         r.File.Name,
			Recognized:   r.Recognized,
			Language:     r.Descriptor.Language,
			Tool:         r.Descriptor.Tool,
			Dependencies: make([]extractedDep, 0, len(r.Dependencies)),
		}
		for _, d := range r.Dependencies {
			f.Dependencies = append(f.Dependencies, extractedDep{
				Name:       d.Name,
				Version:    d.Version,
				GroupID:    d.GroupID,
				ArtifactID: d.ArtifactID,
				PURL:       PURL(r.Descriptor.PURLType, d),
			})
		}
		files = append(files, f)
	}
	return writeJSON(outputPath, files)
}

// writeJSON marshals v as indented JSON and writes it to outputPath (or stdout if "-").
func writeJSON(outputPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if outputPath == "-" {
		_, err = os.Stdout.Write(data)
		if err == nil {
			_, err = os.Stdout.WriteString("\n")
		}
		return err
	}

	return os.WriteFile(outputPath, append(data, '\n'), 0644)
}
