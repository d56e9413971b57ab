package services

import (
	"context"

	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
	"gorm.io/gorm"
)

// EventoService define o contrato de persistência do histórico.
// Fica atrás de uma interface para que a falha de escrita do log de
// auditoria possa ser simulada em teste sem tocar o banco real.
type EventoService interface {
	// Registrar insere um evento no histórico da solicitação.
	Registrar(ctx context.Context, ev *models.Evento) error
	// ListarPorSolicitacao devolve o histórico em ordem cronológica
	// (mais antigo primeiro).
	ListarPorSolicitacao(ctx context.Context, solicitacaoID uint) ([]models.Evento, error)
}

// eventoService é a implementação concreta sobre GORM.
type eventoService struct {
	db *gorm.DB
}

// NewEventoService injeta a dependência *gorm.DB e devolve
// uma instância de EventoService pronta para uso.
func NewEventoService(db *gorm.DB) EventoService {
	return &eventoService{db: db}
}

func (s *eventoService) Registrar(ctx context.Context, ev *models.Evento) error {
	return s.db.WithContext(ctx).Create(ev).Error
}

func (s *eventoService) ListarPorSolicitacao(ctx context.Context, solicitacaoID uint) ([]models.Evento, error) {
	var eventos []models.Evento

	// O id desempata eventos gravados no mesmo instante.
	err := s.db.WithContext(ctx).
		Where("solicitacao_id = ?", solicitacaoID).
		Order("criado_em ASC, id_evento ASC").
		Find(&eventos).Error
	if err != nil {
		return nil, err
	}

	return eventos, nil
}
