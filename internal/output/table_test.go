package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/StinkyLord/lockfile-loader/internal/ingest"
	"github.com/StinkyLord/lockfile-loader/internal/model"
)

func TestWriteSessionTable(t *testing.T) {
	session := &ingest.Session{Results: []model.Row{
		{Arquivo: "package-lock.json", Dependencia: "react", Versao: "18.2.0", Linguagem: "Javascript", TecExistente: true, Associada: true},
		{Arquivo: "package-lock.json", Dependencia: "vue", Versao: "3.4.0", Linguagem: "Javascript", TecCriada: true},
		{Arquivo: "x.md", Dependencia: "x.md", Versao: "-", Linguagem: "Desconhecida", Erro: ingest.ErrUnrecognized},
	}}

	var buf bytes.Buffer
	if err := WriteSessionTable(&buf, session); err != nil {
		t.Fatalf("WriteSessionTable failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"DEPENDÊNCIA",
		"existente",
		"criada",
		"✓ Sucesso",
		"✗ Erro ao associar",
		"✗ " + ingest.ErrUnrecognized,
		"1 associada(s), 1 erro(s), 3 total",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteExtractionTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExtractionTable(&buf, makeTestResults(t)); err != nil {
		t.Fatalf("WriteExtractionTable failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header + 2 + 1 + 1 + unrecognised placeholder
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[len(lines)-1], "notes.md") {
		t.Errorf("last line = %q, want the unrecognised file", lines[len(lines)-1])
	}
}

func TestWriteApplications(t *testing.T) {
	var buf bytes.Buffer
	err := WriteApplications(&buf, []model.Application{{ID: "a1", Sigla: "PORTAL", Descricao: "Portal do cliente"}})
	if err != nil {
		t.Fatalf("WriteApplications failed: %v", err)
	}
	if !strings.Contains(buf.String(), "PORTAL") || !strings.Contains(buf.String(), "Portal do cliente") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestWriteIdentifications(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIdentifications(&buf, []string{"Cargo.lock", "README.md"}); err != nil {
		t.Fatalf("WriteIdentifications failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if !strings.Contains(lines[1], "Rust") || !strings.Contains(lines[1], "Cargo") {
		t.Errorf("Cargo.lock line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "not recognised") {
		t.Errorf("README.md line = %q", lines[2])
	}
}
