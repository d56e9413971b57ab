package lifecycle

import (
	"strings"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
)

// Mutacao reúne os campos brutos de um patch aceito, já parseados.
// Campos nil não foram enviados na requisição.
type Mutacao struct {
	Encaminhamento       *models.Encaminhamento
	AtendimentoStatus    *models.AtendimentoStatus
	AtendimentoDescricao *string
	Descricao            *string
	AutorID              *string
}

// EventoDeCriacao monta o primeiro evento de uma solicitação recém
// criada: tipo CRIACAO, sem status anterior, status novo = inicial.
// A regra de precedência de DerivarEvento não se aplica aqui.
func EventoDeCriacao(s *models.Solicitacao) models.Evento {
	novo := s.Status
	autor := s.AutorID
	return models.Evento{
		SolicitacaoID: s.ID,
		Tipo:          models.EventoCriacao,
		StatusNovo:    &novo,
		AutorID:       &autor,
	}
}

// DerivarEvento produz exatamente um evento para uma mutação aceita,
// ou nil quando nada justifica registro (no-op). Quando vários
// aspectos mudam na mesma mutação, vale a precedência fixa:
//
//  1. status mudou            -> MUDANCA_STATUS
//  2. encaminhamento enviado  -> ENCAMINHAMENTO
//  3. desfecho enviado        -> ATENDIMENTO
//  4. alguma descrição        -> ATUALIZACAO
//
// Eventos MUDANCA_STATUS sempre carregam os dois status, diferentes
// entre si.
func DerivarEvento(solicitacaoID uint, anterior, novo models.Status, m Mutacao) *models.Evento {
	ev := models.Evento{
		SolicitacaoID: solicitacaoID,
		Descricao:     sintetizarDescricao(m),
		AutorID:       m.AutorID,
	}

	switch {
	case anterior != novo:
		ev.Tipo = models.EventoMudancaStatus
		ev.StatusAnterior = &anterior
		ev.StatusNovo = &novo
	case m.Encaminhamento != nil:
		ev.Tipo = models.EventoEncaminhamento
	case m.AtendimentoStatus != nil:
		ev.Tipo = models.EventoAtendimento
	case temTexto(m.Descricao) || temTexto(m.AtendimentoDescricao):
		ev.Tipo = models.EventoAtualizacao
	default:
		return nil
	}

	return &ev
}

// sintetizarDescricao concatena, nesta ordem, a linha de
// encaminhamento, a linha de desfecho, a descrição de atendimento e,
// apenas quando não houve descrição de atendimento, a descrição
// simples. Separador fixo de nova linha; nil quando nada se aplica.
func sintetizarDescricao(m Mutacao) *string {
	var partes []string

	if m.Encaminhamento != nil {
		partes = append(partes, "Encaminhado para: "+string(*m.Encaminhamento))
	}
	if m.AtendimentoStatus != nil {
		partes = append(partes, "Status do atendimento: "+string(*m.AtendimentoStatus))
	}
	if temTexto(m.AtendimentoDescricao) {
		partes = append(partes, *m.AtendimentoDescricao)
	} else if temTexto(m.Descricao) {
		partes = append(partes, *m.Descricao)
	}

	if len(partes) == 0 {
		return nil
	}
	texto := strings.Join(partes, "\n")
	return &texto
}

func temTexto(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
