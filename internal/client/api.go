// Package client reconstrói a visão do aplicativo: consome a API
// autoritativa, guarda um cache local com campos que o servidor não
// conhece (rascunhos, fotos ainda não enviadas) e reconcilia os dois
// a cada atualização.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
)

// API é o contrato mínimo que o reconciliador precisa do servidor.
type API interface {
	ListSolicitacoes(ctx context.Context) ([]models.Solicitacao, error)
	GetEventos(ctx context.Context, solicitacaoID uint) ([]models.Evento, error)
}

// APIClient consome a API REST do backend via resty.
type APIClient struct {
	http *resty.Client
}

// NewAPIClient configura o cliente HTTP com a URL base e um timeout
// por requisição. Timeout estourado aparece para o reconciliador como
// degradação por item, nunca como falha do passo inteiro.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &APIClient{http: c}
}

type listaResposta struct {
	Status string               `json:"status"`
	Total  int                  `json:"total"`
	Items  []models.Solicitacao `json:"items"`
}

type eventosResposta struct {
	Status string          `json:"status"`
	Items  []models.Evento `json:"items"`
}

// ListSolicitacoes busca a lista autoritativa, já ordenada pelo
// servidor (mais recentes primeiro).
func (c *APIClient) ListSolicitacoes(ctx context.Context) ([]models.Solicitacao, error) {
	var corpo listaResposta
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&corpo).
		Get("/solicitacoes")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GET /solicitacoes: status %d", resp.StatusCode())
	}
	return corpo.Items, nil
}

// GetEventos busca o histórico de uma solicitação, mais antigo primeiro.
func (c *APIClient) GetEventos(ctx context.Context, solicitacaoID uint) ([]models.Evento, error) {
	var corpo eventosResposta
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&corpo).
		Get(fmt.Sprintf("/solicitacoes/%d/eventos", solicitacaoID))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GET /solicitacoes/%d/eventos: status %d", solicitacaoID, resp.StatusCode())
	}
	return corpo.Items, nil
}
