package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
)

// AuthService define o contrato de registro e login de usuários.
// A senha nunca é guardada em claro: só o hash bcrypt persiste.
type AuthService interface {
	Register(ctx context.Context, nome, login, senha string) (*models.Usuario, error)
	// Login confere as credenciais e devolve o usuário junto com um
	// token JWT assinado. Credenciais inválidas retornam
	// models.ErrCredenciaisInvalidas, sem retry.
	Login(ctx context.Context, login, senha string) (*models.Usuario, string, error)
}

type authService struct {
	db        *gorm.DB
	jwtSecret []byte
}

// NewAuthService injeta o banco e o segredo de assinatura dos tokens.
func NewAuthService(db *gorm.DB, jwtSecret string) AuthService {
	return &authService{db: db, jwtSecret: []byte(jwtSecret)}
}

func (s *authService) Register(ctx context.Context, nome, login, senha string) (*models.Usuario, error) {
	nome = strings.TrimSpace(nome)
	login = strings.ToLower(strings.TrimSpace(login))
	if nome == "" {
		return nil, &models.ValidationError{Campo: "nome", Motivo: "não pode ser vazio"}
	}
	if login == "" {
		return nil, &models.ValidationError{Campo: "login", Motivo: "não pode ser vazio"}
	}
	if len(senha) < 6 {
		return nil, &models.ValidationError{Campo: "senha", Motivo: "mínimo de 6 caracteres"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.Usuario{
		ID:        uuid.NewString(),
		Nome:      nome,
		Login:     login,
		SenhaHash: string(hash),
		Role:      models.RoleCidadao,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *authService) Login(ctx context.Context, login, senha string) (*models.Usuario, string, error) {
	login = strings.ToLower(strings.TrimSpace(login))

	var u models.Usuario
	err := s.db.WithContext(ctx).Where("login = ?", login).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", models.ErrCredenciaisInvalidas
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(senha)) != nil {
		return nil, "", models.ErrCredenciaisInvalidas
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID,
		"login": u.Login,
		"role":  string(u.Role),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	assinado, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return &u, assinado, nil
}
