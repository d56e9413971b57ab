package models

import "fmt"

// Status representa o ciclo de vida de uma solicitação.
type Status string

const (
	StatusNova          Status = "NOVA"
	StatusEmAtendimento Status = "EM_ATENDIMENTO"
	StatusConcluida     Status = "CONCLUIDA"
	StatusNaoConcluida  Status = "NAO_CONCLUIDA"
)

// ParseStatus valida um valor vindo da API. Valores desconhecidos
// são rejeitados explicitamente em vez de cair num default silencioso.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusNova, StatusEmAtendimento, StatusConcluida, StatusNaoConcluida:
		return Status(raw), nil
	}
	return "", &ValidationError{Campo: "status", Motivo: fmt.Sprintf("valor desconhecido %q", raw)}
}

// Terminal informa se o status não admite mais mudança de status.
func (s Status) Terminal() bool {
	return s == StatusConcluida || s == StatusNaoConcluida
}

// Categoria da solicitação. Definida na criação e imutável depois.
type Categoria string

const (
	CategoriaRiscoEletrico Categoria = "RISCO_ELETRICO"
	CategoriaRiscoQuedas   Categoria = "RISCO_QUEDAS"
	CategoriaPodaRotineira Categoria = "PODA_ROTINEIRA"
	CategoriaOutros        Categoria = "OUTROS"
)

func ParseCategoria(raw string) (Categoria, error) {
	switch Categoria(raw) {
	case CategoriaRiscoEletrico, CategoriaRiscoQuedas, CategoriaPodaRotineira, CategoriaOutros:
		return Categoria(raw), nil
	}
	return "", &ValidationError{Campo: "categoria", Motivo: fmt.Sprintf("valor desconhecido %q", raw)}
}

// Encaminhamento é o destino externo de uma solicitação encaminhada.
type Encaminhamento string

const (
	EncaminhamentoDefesaCivil      Encaminhamento = "DEFESA_CIVIL"
	EncaminhamentoBombeiros        Encaminhamento = "BOMBEIROS"
	EncaminhamentoCompanhiaEnergia Encaminhamento = "COMPANHIA_ENERGIA"
	EncaminhamentoOutros           Encaminhamento = "OUTROS"
)

func ParseEncaminhamento(raw string) (Encaminhamento, error) {
	switch Encaminhamento(raw) {
	case EncaminhamentoDefesaCivil, EncaminhamentoBombeiros, EncaminhamentoCompanhiaEnergia, EncaminhamentoOutros:
		return Encaminhamento(raw), nil
	}
	return "", &ValidationError{Campo: "atendimentoEncaminhamento", Motivo: fmt.Sprintf("valor desconhecido %q", raw)}
}

// AtendimentoStatus é o desfecho registrado pelo operador de campo.
type AtendimentoStatus string

const (
	AtendimentoSucesso     AtendimentoStatus = "ATENDIDO_SUCESSO"
	AtendimentoNaoAtendido AtendimentoStatus = "NAO_ATENDIDO"
	AtendimentoEncaminhado AtendimentoStatus = "ENCAMINHADO"
)

func ParseAtendimentoStatus(raw string) (AtendimentoStatus, error) {
	switch AtendimentoStatus(raw) {
	case AtendimentoSucesso, AtendimentoNaoAtendido, AtendimentoEncaminhado:
		return AtendimentoStatus(raw), nil
	}
	return "", &ValidationError{Campo: "atendimentoStatus", Motivo: fmt.Sprintf("valor desconhecido %q", raw)}
}

// TipoEvento classifica uma entrada do histórico.
type TipoEvento string

const (
	EventoCriacao        TipoEvento = "CRIACAO"
	EventoMudancaStatus  TipoEvento = "MUDANCA_STATUS"
	EventoEncaminhamento TipoEvento = "ENCAMINHAMENTO"
	EventoAtendimento    TipoEvento = "ATENDIMENTO"
	EventoAtualizacao    TipoEvento = "ATUALIZACAO"
)

// Role do usuário no sistema.
type Role string

const (
	RoleCidadao       Role = "CIDADAO"
	RoleOperadorCampo Role = "OPERADOR_CAMPO"
	RoleAdmin         Role = "ADMIN"
)
