package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/StinkyLord/lockfile-loader/internal/formats"
	"github.com/StinkyLord/lockfile-loader/internal/model"
	"github.com/StinkyLord/lockfile-loader/internal/scanner"
)

func descriptor(t *testing.T, name string) formats.Descriptor {
	t.Helper()
	d, ok := formats.Identify(name)
	if !ok {
		t.Fatalf("%s not recognised", name)
	}
	return d
}

// makeTestResults builds synthetic extraction results: two npm files sharing
// react, a pom.xml and an unrecognised file.
func makeTestResults(t *testing.T) []scanner.Result {
	return []scanner.Result{
		{
			File:       scanner.File{Name: "web/package-lock.json"},
			Descriptor: descriptor(t, "package-lock.json"),
			Recognized: true,
			Dependencies: []*model.Dependency{
				{Name: "react", Version: "18.2.0"},
				{Name: "@types/node", Version: "20.1.0"},
			},
		},
		{
			File:       scanner.File{Name: "admin/package-lock.json"},
			Descriptor: descriptor(t, "package-lock.json"),
			Recognized: true,
			Dependencies: []*model.Dependency{
				{Name: "react", Version: "18.2.0"},
			},
		},
		{
			File:       scanner.File{Name: "pom.xml"},
			Descriptor: descriptor(t, "pom.xml"),
			Recognized: true,
			Dependencies: []*model.Dependency{
				{Name: "org.x:core:managed", Version: "managed", GroupID: "org.x", ArtifactID: "core"},
			},
		},
		{
			File: scanner.File{Name: "notes.md"},
		},
	}
}

func writeAndDecode(t *testing.T, results []scanner.Result) cdxBOM {
	t.Helper()
	tmp := filepath.Join(t.TempDir(), "sbom.json")
	if err := WriteCycloneDX(results, tmp, "test-version"); err != nil {
		t.Fatalf("WriteCycloneDX failed: %v", err)
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatalf("cannot read output file: %v", err)
	}
	var bom cdxBOM
	if err := json.Unmarshal(data, &bom); err != nil {
		t.Fatalf("cannot unmarshal CycloneDX BOM: %v", err)
	}
	return bom
}

// TestCycloneDXSchema verifies that the output is valid JSON and contains the
// required CycloneDX 1.4 top-level fields.
func TestCycloneDXSchema(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "sbom.json")
	if err := WriteCycloneDX(makeTestResults(t), tmp, "1.0.0-test"); err != nil {
		t.Fatalf("WriteCycloneDX failed: %v", err)
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatalf("cannot read output file: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v\nContent:\n%s", err, string(data))
	}

	for _, field := range []string{"bomFormat", "specVersion", "version", "serialNumber", "metadata", "components"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("missing required field %q in CycloneDX output", field)
		}
	}

	var serialNumber string
	if err := json.Unmarshal(raw["serialNumber"], &serialNumber); err != nil || !strings.HasPrefix(serialNumber, "urn:uuid:") {
		t.Errorf("serialNumber = %q, want prefix %q", serialNumber, "urn:uuid:")
	}
}

// TestCycloneDXComponents verifies de-duplication, ordering and PURLs.
func TestCycloneDXComponents(t *testing.T) {
	bom := writeAndDecode(t, makeTestResults(t))

	if len(bom.Components) != 3 {
		t.Fatalf("components = %d, want 3: %+v", len(bom.Components), bom.Components)
	}

	wantNames := []string{"@types/node", "core", "react"}
	for i, want := range wantNames {
		if bom.Components[i].Name != want {
			t.Errorf("components[%d].name = %q, want %q", i, bom.Components[i].Name, want)
		}
	}

	node := bom.Components[0]
	if node.PURL != "pkg:npm/%40types/node@20.1.0" {
		t.Errorf("@types/node purl = %q", node.PURL)
	}

	core := bom.Components[1]
	if core.Group != "org.x" {
		t.Errorf("core group = %q, want org.x", core.Group)
	}
	if core.PURL != "pkg:maven/org.x/core" {
		t.Errorf("managed maven purl = %q, want no version", core.PURL)
	}

	react := bom.Components[2]
	var files []string
	for _, p := range react.Properties {
		if p.Name == "lockfile:file" {
			files = append(files, p.Value)
		}
	}
	if len(files) != 2 || files[0] != "web/package-lock.json" || files[1] != "admin/package-lock.json" {
		t.Errorf("react files = %v, want both lockfiles in scan order", files)
	}
}

// TestCycloneDXMetadata verifies the metadata block.
func TestCycloneDXMetadata(t *testing.T) {
	bom := writeAndDecode(t, nil)

	if bom.Metadata.Timestamp == "" {
		t.Error("metadata.timestamp is empty")
	}
	if len(bom.Metadata.Tools) == 0 {
		t.Fatal("metadata.tools is empty")
	}
	tool := bom.Metadata.Tools[0]
	if tool.Name != "lockfile-loader" {
		t.Errorf("tool name = %q, want %q", tool.Name, "lockfile-loader")
	}
	if tool.Version != "test-version" {
		t.Errorf("tool version = %q, want %q", tool.Version, "test-version")
	}
	if bom.Components == nil {
		t.Error("components must be an empty array, not null")
	}
}

// TestCycloneDXStdout verifies that writing to "-" does not error.
func TestCycloneDXStdout(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := WriteCycloneDX(makeTestResults(t), "-", "1.0.0-test")

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	r.Close()

	if err != nil {
		t.Errorf("WriteCycloneDX to stdout failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Errorf("stdout output is not valid JSON: %v", err)
	}
}

func TestPURL(t *testing.T) {
	tests := []struct {
		purlType string
		dep      model.Dependency
		want     string
	}{
		{"npm", model.Dependency{Name: "left-pad", Version: "1.3.0"}, "pkg:npm/left-pad@1.3.0"},
		{"npm", model.Dependency{Name: "left-pad", Version: "latest"}, "pkg:npm/left-pad"},
		{"golang", model.Dependency{Name: "github.com/spf13/cobra", Version: "1.10.2"}, "pkg:golang/github.com/spf13/cobra@v1.10.2"},
		{"maven", model.Dependency{Name: "org.slf4j:slf4j-api", Version: "2.0.9"}, "pkg:maven/org.slf4j/slf4j-api@2.0.9"},
		{"pypi", model.Dependency{Name: "Flask_Login", Version: "0.6.3"}, "pkg:pypi/flask-login@0.6.3"},
		{"", model.Dependency{Name: "x", Version: "1"}, ""},
	}
	for _, tt := range tests {
		if got := PURL(tt.purlType, &tt.dep); got != tt.want {
			t.Errorf("PURL(%q, %s@%s) = %q, want %q", tt.purlType, tt.dep.Name, tt.dep.Version, got, tt.want)
		}
	}
}
