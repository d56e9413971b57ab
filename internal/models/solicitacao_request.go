package models

// JSON do front-end

// AnexoRequest carrega a referência de uma mídia já enviada
// para /uploads/base64, com o tamanho devolvido pelo upload.
type AnexoRequest struct {
	URL          string `json:"url"`
	Mime         string `json:"mime"`
	TamanhoBytes int64  `json:"tamanhoBytes,omitempty"`
}

// CriarSolicitacaoRequest é o corpo de POST /solicitacoes.
// autorId ausente cai no autor de demonstração.
type CriarSolicitacaoRequest struct {
	Titulo    string         `json:"titulo"`
	Descricao string         `json:"descricao"`
	Categoria string         `json:"categoria"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	AutorID   string         `json:"autorId,omitempty"`
	Anexos    []AnexoRequest `json:"anexos,omitempty"`
}

// PatchSolicitacaoRequest é o corpo de PATCH /solicitacoes/:id.
// Todos os campos são opcionais, mas a requisição precisa trazer
// ao menos um campo reconhecido.
type PatchSolicitacaoRequest struct {
	Status                    *string `json:"status,omitempty"`
	Descricao                 *string `json:"descricao,omitempty"`
	AtendimentoDescricao      *string `json:"atendimentoDescricao,omitempty"`
	AtendimentoEncaminhamento *string `json:"atendimentoEncaminhamento,omitempty"`
	AtendimentoStatus         *string `json:"atendimentoStatus,omitempty"`
	OperadorID                string  `json:"operadorId,omitempty"`
}

// Vazio informa se o corpo não trouxe nenhum campo reconhecido.
// operadorId sozinho conta como corpo válido: o patch segue como
// no-op, sem gerar evento.
func (r *PatchSolicitacaoRequest) Vazio() bool {
	return r.Status == nil &&
		r.Descricao == nil &&
		r.AtendimentoDescricao == nil &&
		r.AtendimentoEncaminhamento == nil &&
		r.AtendimentoStatus == nil &&
		r.OperadorID == ""
}
