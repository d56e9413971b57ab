package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
	"github.com/lucasmalaguti/CortaPau/backend/internal/services"
)

// AuthController agrupa as rotas de registro e login.
type AuthController struct {
	svc services.AuthService
}

// NewAuthController é a função fábrica que recebe uma implementação
// de AuthService e retorna um AuthController configurado.
func NewAuthController(svc services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// Register associa as rotas de autenticação a este controller.
func (ctr *AuthController) Register(g *echo.Group) {
	g.POST("/auth/register", ctr.RegisterUsuario)
	g.POST("/auth/login", ctr.Login)
}

type credenciaisRequest struct {
	Nome  string `json:"nome,omitempty"`
	Login string `json:"login"`
	Senha string `json:"senha"`
}

// RegisterUsuario trata POST /auth/register.
func (ctr *AuthController) RegisterUsuario(c echo.Context) error {
	req := new(credenciaisRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "corpo da requisição inválido: " + err.Error()},
		)
	}

	u, err := ctr.svc.Register(c.Request().Context(), req.Nome, req.Login, req.Senha)
	if err != nil {
		var valErr *models.ValidationError
		if errors.As(err, &valErr) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status": "ok",
		"user":   u,
	})
}

// Login trata POST /auth/login. Credenciais inválidas retornam 401
// sem distinguir login inexistente de senha errada.
func (ctr *AuthController) Login(c echo.Context) error {
	req := new(credenciaisRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "corpo da requisição inválido: " + err.Error()},
		)
	}

	u, token, err := ctr.svc.Login(c.Request().Context(), req.Login, req.Senha)
	if errors.Is(err, models.ErrCredenciaisInvalidas) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"user":   u,
		"token":  token,
	})
}
