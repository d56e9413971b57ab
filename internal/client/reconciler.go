package client

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
)

// limiteFanoutPadrao limita quantas buscas de histórico correm em
// paralelo num passo de reconciliação.
const limiteFanoutPadrao = 8

// Reconciler produz a visão mesclada das solicitações: snapshot
// autoritativo do servidor + campos que só o cache local carrega.
type Reconciler struct {
	api    API
	cache  *Cache
	log    *zap.Logger
	limite int
}

// NewReconciler injeta o cliente da API, o cache local e o logger.
func NewReconciler(api API, cache *Cache, log *zap.Logger) *Reconciler {
	return &Reconciler{api: api, cache: cache, log: log, limite: limiteFanoutPadrao}
}

// Reconcile executa um passo completo:
//
//  1. busca a lista autoritativa (mais recentes primeiro);
//  2. para cada item, em paralelo limitado e com slot de saída
//     disjunto: casa com o item no cache pelo id canônico, preserva
//     só a allowlist de campos locais, resolve a posse e busca o
//     histórico com degradação por item;
//  3. só depois do passo inteiro, substitui o cache atomicamente.
//
// A falha de histórico de um item nunca derruba o passo dos demais:
// cai no histórico em cache, ou vazio. Cancelamento do ctx abandona o
// passo sem tocar o snapshot já publicado. Só a busca da lista
// autoritativa falha o passo inteiro.
func (r *Reconciler) Reconcile(ctx context.Context, ator Ator) ([]ItemLocal, error) {
	lista, err := r.api.ListSolicitacoes(ctx)
	if err != nil {
		return nil, err
	}

	// Snapshot somente-leitura do cache anterior; nada compartilhado
	// muda durante o fan-out.
	anterior := r.cache.Snapshot()
	porID := make(map[uint]*ItemLocal, len(anterior))
	for i := range anterior {
		porID[anterior[i].Solicitacao.ID] = &anterior[i]
	}

	novo := make([]ItemLocal, len(lista))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limite)
	for i := range lista {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			sol := lista[i]
			item := ItemLocal{Solicitacao: sol}

			// Allowlist: só os campos que o servidor não conhece
			// atravessam a reconciliação. Todo o resto vem do
			// snapshot autoritativo.
			cacheado := porID[sol.ID]
			if cacheado != nil {
				item.LocalID = cacheado.LocalID
				item.RascunhoAtendimento = cacheado.RascunhoAtendimento
				item.RascunhoEncaminhamento = cacheado.RascunhoEncaminhamento
				item.MidiasPendentes = cacheado.MidiasPendentes
			}
			if item.LocalID == "" {
				item.LocalID = uuid.NewString()
			}

			item.MinhaSolicitacao = PertenceAoAtor(&sol, ator)

			eventos, err := r.api.GetEventos(gctx, sol.ID)
			if err != nil && gctx.Err() != nil {
				// Cancelamento não é degradação: aborta o passo.
				return gctx.Err()
			}
			switch {
			case err == nil:
				item.Eventos = eventos
			case cacheado != nil:
				// Degradação por item: mantém o histórico antigo.
				r.log.Warn("falha ao buscar histórico, usando cache",
					zap.Uint("solicitacao_id", sol.ID),
					zap.Error(err))
				item.Eventos = cacheado.Eventos
			default:
				r.log.Warn("falha ao buscar histórico, sem cache anterior",
					zap.Uint("solicitacao_id", sol.ID),
					zap.Error(err))
				item.Eventos = []models.Evento{}
			}

			novo[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Passo abandonado (cancelamento): o snapshot publicado
		// permanece o anterior, intacto.
		return nil, err
	}

	r.cache.Replace(novo)
	return novo, nil
}
