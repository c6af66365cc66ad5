package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/StinkyLord/lockfile-loader/internal/formats"
	"github.com/StinkyLord/lockfile-loader/internal/ingest"
	"github.com/StinkyLord/lockfile-loader/internal/model"
	"github.com/StinkyLord/lockfile-loader/internal/scanner"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// WriteSessionTable renders session rows in the column order of the
// ingestion report followed by a one-line summary.
func WriteSessionTable(w io.Writer, session *ingest.Session) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ARQUIVO\tDEPENDÊNCIA\tVERSÃO\tLINGUAGEM\tTECNOLOGIA\tASSOCIAÇÃO\tRESULTADO")
	for _, r := range session.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Arquivo, r.Dependencia, r.Versao, r.Linguagem,
			r.TechnologyStatus(), r.AssociationStatus(), outcome(r))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sum := session.Summary()
	_, err := fmt.Fprintf(w, "\n%d associada(s), %d erro(s), %d total\n", sum.Associated, sum.Errors, sum.Total)
	return err
}

// WriteExtractionTable renders one line per extracted dependency. Files that
// yielded nothing get a single line with "-" placeholders.
func WriteExtractionTable(w io.Writer, results []scanner.Result) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "FILE\tLANGUAGE\tTOOL\tDEPENDENCY\tVERSION")
	for _, r := range results {
		lang, tool := r.Descriptor.Language, r.Descriptor.Tool
		if !r.Recognized {
			lang, tool = "?", "?"
		}
		if len(r.Dependencies) == 0 {
			fmt.Fprintf(tw, "%s\t%s\t%s\t-\t-\n", r.File.Name, lang, tool)
			continue
		}
		for _, d := range r.Dependencies {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.File.Name, lang, tool, d.Name, d.Version)
		}
	}
	return tw.Flush()
}

func outcome(r model.Row) string {
	switch {
	case r.Failed():
		return "✗ " + r.Erro
	case r.Associada:
		return "✓ Sucesso"
	default:
		return "✗ Erro ao associar"
	}
}

// WriteApplications lists catalog applications, one per line.
func WriteApplications(w io.Writer, apps []model.Application) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tSIGLA\tDESCRIÇÃO")
	for _, a := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.ID, a.Sigla, a.Descricao)
	}
	return tw.Flush()
}

// WriteIdentifications shows the language and tool each name maps to.
func WriteIdentifications(w io.Writer, names []string) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "FILE\tLANGUAGE\tTOOL\tFORMAT")
	for _, name := range names {
		d, ok := formats.Identify(name)
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t-\tnot recognised\n", name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, d.Language, d.Tool, d.Format)
	}
	return tw.Flush()
}
