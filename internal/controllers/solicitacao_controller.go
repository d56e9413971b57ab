package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lucasmalaguti/CortaPau/backend/internal/lifecycle"
	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
	"github.com/lucasmalaguti/CortaPau/backend/internal/services"
)

// SolicitacaoController agrupa as rotas e a lógica HTTP
// relacionadas a solicitações.
type SolicitacaoController struct {
	// svc é a interface de serviço que expõe criação, listagem,
	// patch e histórico de solicitações.
	svc services.SolicitacaoService
}

// NewSolicitacaoController é a função fábrica que recebe uma
// implementação de SolicitacaoService e retorna um ponteiro
// para um SolicitacaoController configurado.
func NewSolicitacaoController(svc services.SolicitacaoService) *SolicitacaoController {
	return &SolicitacaoController{svc: svc}
}

// Register associa as rotas HTTP de solicitações a este controller.
func (ctr *SolicitacaoController) Register(g *echo.Group) {
	g.POST("/solicitacoes", ctr.CriarSolicitacao)
	g.GET("/solicitacoes", ctr.ListSolicitacoes)
	g.PATCH("/solicitacoes/:id", ctr.PatchSolicitacao)
	g.GET("/solicitacoes/:id/eventos", ctr.GetEventos)
}

// CriarSolicitacao trata POST /solicitacoes.
// Espera o JSON de CriarSolicitacaoRequest; em sucesso retorna
// 201 Created com o item persistido.
func (ctr *SolicitacaoController) CriarSolicitacao(c echo.Context) error {
	// 1. Popula a request a partir do corpo. JSON inválido vira 400.
	req := new(models.CriarSolicitacaoRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "corpo da requisição inválido: " + err.Error()},
		)
	}

	// 2. Chama o serviço, que valida categoria e coordenadas.
	sol, err := ctr.svc.CriarSolicitacao(c.Request().Context(), req)
	if err != nil {
		return respostaErro(c, err)
	}

	// 3. Retorna o item criado.
	return c.JSON(http.StatusCreated, echo.Map{
		"status": "ok",
		"item":   sol,
	})
}

// ListSolicitacoes trata GET /solicitacoes. Retorna todas as
// solicitações, mais recentes primeiro.
func (ctr *SolicitacaoController) ListSolicitacoes(c echo.Context) error {
	sols, err := ctr.svc.ListSolicitacoes(c.Request().Context())
	if err != nil {
		return respostaErro(c, err)
	}

	if sols == nil {
		sols = []models.Solicitacao{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"total":  len(sols),
		"items":  sols,
	})
}

// PatchSolicitacao trata PATCH /solicitacoes/:id.
// O corpo precisa trazer ao menos um campo reconhecido; transições de
// status ilegais e enums desconhecidos viram 400, id inexistente 404.
func (ctr *SolicitacaoController) PatchSolicitacao(c echo.Context) error {
	// 1. Extrai e valida o id da rota.
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "id inválido"},
		)
	}

	// 2. Popula a request parcial.
	req := new(models.PatchSolicitacaoRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "corpo da requisição inválido: " + err.Error()},
		)
	}

	// 3. Aplica a mutação pelo serviço.
	sol, err := ctr.svc.PatchSolicitacao(c.Request().Context(), uint(id), req)
	if err != nil {
		return respostaErro(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"item":   sol,
	})
}

// GetEventos trata GET /solicitacoes/:id/eventos.
// Retorna o histórico em ordem cronológica; solicitação desconhecida
// retorna 404 com items vazio.
func (ctr *SolicitacaoController) GetEventos(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "id inválido"},
		)
	}

	eventos, err := ctr.svc.GetEventos(c.Request().Context(), uint(id))
	if errors.Is(err, models.ErrNaoEncontrado) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": models.ErrNaoEncontrado.Error(),
			"items": []models.Evento{},
		})
	}
	if err != nil {
		return respostaErro(c, err)
	}

	if eventos == nil {
		eventos = []models.Evento{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"items":  eventos,
	})
}

// respostaErro converte os erros tipados do domínio no status HTTP
// correspondente. Qualquer coisa fora da taxonomia vira 500.
func respostaErro(c echo.Context, err error) error {
	var (
		valErr   *models.ValidationError
		transErr *lifecycle.TransicaoIlegalError
		campoErr *lifecycle.CampoObrigatorioError
	)

	switch {
	case errors.Is(err, models.ErrNaoEncontrado):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &valErr),
		errors.As(err, &transErr),
		errors.As(err, &campoErr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
