package model

// Application is a target application/project record from the catalog.
type Application struct {
	ID        string `json:"id"`
	Sigla     string `json:"sigla"`
	Descricao string `json:"descricao"`
}

// Ambientes flags the environments a technology is deployed to.
type Ambientes struct {
	Dev       bool `json:"dev"`
	QA        bool `json:"qa"`
	Prod      bool `json:"prod"`
	Cloud     bool `json:"cloud"`
	OnPremise bool `json:"onPremise"`
}

// Technology is a catalog technology record. Nome is the de-duplication key
// enforced by the backend.
type Technology struct {
	ID                   string    `json:"id,omitempty"`
	Sigla                string    `json:"sigla"`
	Nome                 string    `json:"nome"`
	VersaoRelease        string    `json:"versaoRelease,omitempty"`
	Categoria            string    `json:"categoria,omitempty"`
	Status               string    `json:"status,omitempty"`
	FornecedorFabricante string    `json:"fornecedorFabricante,omitempty"`
	TipoLicenciamento    string    `json:"tipoLicenciamento,omitempty"`
	MaturidadeInterna    string    `json:"maturidadeInterna,omitempty"`
	NivelSuporteInterno  string    `json:"nivelSuporteInterno,omitempty"`
	Ambientes            Ambientes `json:"ambientes"`

	// Flat environment flags as accepted by the POST /api/tecnologias handler.
	AmbienteDev       bool `json:"ambienteDev,omitempty"`
	AmbienteQa        bool `json:"ambienteQa,omitempty"`
	AmbienteProd      bool `json:"ambienteProd,omitempty"`
	AmbienteCloud     bool `json:"ambienteCloud,omitempty"`
	AmbienteOnPremise bool `json:"ambienteOnPremise,omitempty"`
}

// SetAmbientes sets both the nested and flat environment flags.
func (t *Technology) SetAmbientes(a Ambientes) {
	t.Ambientes = a
	t.AmbienteDev = a.Dev
	t.AmbienteQa = a.QA
	t.AmbienteProd = a.Prod
	t.AmbienteCloud = a.Cloud
	t.AmbienteOnPremise = a.OnPremise
}
