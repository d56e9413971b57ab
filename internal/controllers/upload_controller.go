package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucasmalaguti/CortaPau/backend/internal/services"
)

// UploadController trata o envio de fotos em base64.
type UploadController struct {
	svc services.UploadService
}

// NewUploadController é a função fábrica que recebe uma implementação
// de UploadService e retorna um UploadController configurado.
func NewUploadController(svc services.UploadService) *UploadController {
	return &UploadController{svc: svc}
}

// Register associa a rota de upload a este controller.
func (ctr *UploadController) Register(g *echo.Group) {
	g.POST("/uploads/base64", ctr.UploadBase64)
}

type uploadRequest struct {
	ImagemBase64 string `json:"imagemBase64"`
	Mime         string `json:"mime"`
}

// UploadBase64 trata POST /uploads/base64. O front envia a foto em
// base64; a resposta carrega a URL que vira referência de anexo.
func (ctr *UploadController) UploadBase64(c echo.Context) error {
	req := new(uploadRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "corpo da requisição inválido: " + err.Error()},
		)
	}
	if req.ImagemBase64 == "" {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "imagemBase64 é obrigatório"},
		)
	}

	url, tamanho, err := ctr.svc.SalvarBase64(c.Request().Context(), req.ImagemBase64, req.Mime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":       "ok",
		"url":          url,
		"mime":         req.Mime,
		"tamanhoBytes": tamanho,
	})
}
