// Package lifecycle concentra as regras puras do ciclo de vida de uma
// solicitação: quais mudanças de status são legais e qual evento de
// histórico cada mutação gera. Nada aqui toca banco ou rede; a
// persistência é responsabilidade de quem chama.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
)

// ErrSemMudanca sinaliza que o status pedido é igual ao atual.
// Não é uma falha: a mutação vira no-op e nenhum evento é gerado.
var ErrSemMudanca = errors.New("status pedido é igual ao atual")

// TransicaoIlegalError indica que o status pedido não é alcançável
// a partir do status atual.
type TransicaoIlegalError struct {
	De   models.Status
	Para models.Status
}

func (e *TransicaoIlegalError) Error() string {
	return fmt.Sprintf("transição ilegal: %s -> %s", e.De, e.Para)
}

// CampoObrigatorioError indica uma pré-condição de domínio entre campos
// (por exemplo, concluir exige descrição de atendimento). É verificada
// aqui e não na validação estrutural porque depende da semântica do
// status de destino.
type CampoObrigatorioError struct {
	Campo string
}

func (e *CampoObrigatorioError) Error() string {
	return fmt.Sprintf("campo obrigatório ausente: %s", e.Campo)
}

// transicoesLegais enumera, para cada status de origem, os destinos
// aceitos. EM_ATENDIMENTO -> NOVA fica de fora: não há regressão
// depois que o atendimento começou. Status terminais não aparecem
// como origem.
var transicoesLegais = map[models.Status][]models.Status{
	models.StatusNova: {
		models.StatusEmAtendimento,
		models.StatusConcluida,
		models.StatusNaoConcluida,
	},
	models.StatusEmAtendimento: {
		models.StatusConcluida,
		models.StatusNaoConcluida,
	},
}

// ValidarTransicao decide se a mudança de status pedida é aceita.
//   - atual e pedido são os status de origem e destino.
//   - atendimentoDescricao é a descrição efetiva após o patch (a enviada
//     na requisição ou, na sua ausência, a já registrada).
//
// Retorna nil quando aceita, ErrSemMudanca para no-op, ou um erro
// tipado de rejeição. Função pura, sem efeitos colaterais.
func ValidarTransicao(atual, pedido models.Status, atendimentoDescricao string) error {
	if pedido == atual {
		return ErrSemMudanca
	}

	permitidos, ok := transicoesLegais[atual]
	if !ok {
		// Origem terminal: nenhuma mudança de status é aceita.
		return &TransicaoIlegalError{De: atual, Para: pedido}
	}

	legal := false
	for _, p := range permitidos {
		if p == pedido {
			legal = true
			break
		}
	}
	if !legal {
		return &TransicaoIlegalError{De: atual, Para: pedido}
	}

	// Concluir com sucesso exige registrar o que foi feito.
	if pedido == models.StatusConcluida && strings.TrimSpace(atendimentoDescricao) == "" {
		return &CampoObrigatorioError{Campo: "atendimentoDescricao"}
	}

	return nil
}
