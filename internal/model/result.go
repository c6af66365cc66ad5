package model

// Row is one line of the ingestion report: one per (file, dependency) pair,
// or one per file that could not be parsed. Rows are never mutated after
// being appended to a session.
type Row struct {
	Arquivo      string `json:"arquivo"`
	Dependencia  string `json:"dependencia"`
	Versao       string `json:"versao"`
	Tecnologia   string `json:"tecnologia"`
	Linguagem    string `json:"linguagem"`
	TecExistente bool   `json:"tecExistente"`
	TecCriada    bool   `json:"tecCriada"`
	Associada    bool   `json:"associada"`
	Erro         string `json:"erro,omitempty"`
}

// Failed reports whether the row carries an error message.
func (r Row) Failed() bool {
	return r.Erro != ""
}

// TechnologyStatus returns the badge label for the technology column.
func (r Row) TechnologyStatus() string {
	switch {
	case r.TecCriada:
		return "criada"
	case r.TecExistente:
		return "existente"
	default:
		return "-"
	}
}

// AssociationStatus returns the badge label for the association column.
func (r Row) AssociationStatus() string {
	if r.Associada {
		return "associada"
	}
	return "não associada"
}
