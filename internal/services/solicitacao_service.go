package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lucasmalaguti/CortaPau/backend/internal/lifecycle"
	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
)

// SolicitacaoService define as operações de negócio
// relacionadas a solicitações de poda e risco em árvores.
type SolicitacaoService interface {
	// CriarSolicitacao valida e persiste uma nova solicitação,
	// registrando o evento de criação.
	CriarSolicitacao(ctx context.Context, req *models.CriarSolicitacaoRequest) (*models.Solicitacao, error)
	// ListSolicitacoes devolve todas as solicitações, mais recentes
	// primeiro, com autor e anexos carregados.
	ListSolicitacoes(ctx context.Context) ([]models.Solicitacao, error)
	// PatchSolicitacao aplica uma mutação parcial (status, descrições,
	// atendimento) e registra no máximo um evento de histórico.
	PatchSolicitacao(ctx context.Context, id uint, req *models.PatchSolicitacaoRequest) (*models.Solicitacao, error)
	// GetEventos devolve o histórico da solicitação, mais antigo primeiro.
	GetEventos(ctx context.Context, id uint) ([]models.Evento, error)
}

// solicitacaoService é a implementação concreta de SolicitacaoService.
type solicitacaoService struct {
	db          *gorm.DB
	eventos     EventoService
	log         *zap.Logger
	demoAutorID string
}

// NewSolicitacaoService injeta as dependências e devolve uma instância
// de SolicitacaoService pronta para uso. demoAutorID é o autor usado
// quando a requisição não identifica quem criou a solicitação.
func NewSolicitacaoService(db *gorm.DB, eventos EventoService, log *zap.Logger, demoAutorID string) SolicitacaoService {
	return &solicitacaoService{db: db, eventos: eventos, log: log, demoAutorID: demoAutorID}
}

// CriarSolicitacao valida categoria e coordenadas, resolve o autor
// (caindo no autor de demonstração quando ausente) e persiste a
// solicitação com status inicial NOVA. O evento de criação é gravado
// em seguida, em melhor esforço: a falha é logada e não desfaz a
// criação.
func (s *solicitacaoService) CriarSolicitacao(ctx context.Context, req *models.CriarSolicitacaoRequest) (*models.Solicitacao, error) {
	if strings.TrimSpace(req.Titulo) == "" {
		return nil, &models.ValidationError{Campo: "titulo", Motivo: "não pode ser vazio"}
	}

	categoria, err := models.ParseCategoria(req.Categoria)
	if err != nil {
		return nil, err
	}

	if req.Latitude < -90 || req.Latitude > 90 {
		return nil, &models.ValidationError{Campo: "latitude", Motivo: "fora do intervalo [-90, 90]"}
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return nil, &models.ValidationError{Campo: "longitude", Motivo: "fora do intervalo [-180, 180]"}
	}

	autorID := req.AutorID
	if autorID == "" {
		autorID = s.demoAutorID
		if err := s.garantirAutorDemo(ctx); err != nil {
			return nil, err
		}
	}

	sol := models.Solicitacao{
		Titulo:    req.Titulo,
		Descricao: req.Descricao,
		Categoria: categoria,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    models.StatusNova,
		AutorID:   autorID,
	}
	for _, a := range req.Anexos {
		sol.Anexos = append(sol.Anexos, models.Anexo{URL: a.URL, Mime: a.Mime, TamanhoBytes: a.TamanhoBytes})
	}

	if err := s.db.WithContext(ctx).Create(&sol).Error; err != nil {
		return nil, err
	}

	// Trilha de auditoria é secundária: a criação já está confirmada.
	ev := lifecycle.EventoDeCriacao(&sol)
	if err := s.eventos.Registrar(ctx, &ev); err != nil {
		s.log.Warn("falha ao gravar evento de criação",
			zap.Uint("solicitacao_id", sol.ID),
			zap.Error(err))
	}

	return s.carregar(ctx, sol.ID)
}

func (s *solicitacaoService) ListSolicitacoes(ctx context.Context) ([]models.Solicitacao, error) {
	var sols []models.Solicitacao

	err := s.db.WithContext(ctx).
		Preload("Autor").
		Preload("Anexos").
		Order("created_at DESC, id_solicitacao DESC").
		Find(&sols).Error
	if err != nil {
		return nil, err
	}

	return sols, nil
}

// PatchSolicitacao aplica os campos reconhecidos do corpo sobre o
// registro atual. A mudança de status passa pela máquina de estados;
// os demais campos (descrições, encaminhamento, desfecho) são sempre
// aceitos, inclusive depois de um status terminal. No máximo um evento
// é derivado por mutação, e sua gravação nunca desfaz o patch.
func (s *solicitacaoService) PatchSolicitacao(ctx context.Context, id uint, req *models.PatchSolicitacaoRequest) (*models.Solicitacao, error) {
	if req.Vazio() {
		return nil, &models.ValidationError{Campo: "body", Motivo: "nenhum campo reconhecido na requisição"}
	}

	var sol models.Solicitacao
	if err := s.db.WithContext(ctx).First(&sol, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNaoEncontrado
		}
		return nil, err
	}

	anterior := sol.Status
	mut := lifecycle.Mutacao{
		Descricao:            req.Descricao,
		AtendimentoDescricao: req.AtendimentoDescricao,
	}
	if req.OperadorID != "" {
		operador := req.OperadorID
		mut.AutorID = &operador
	}

	// 1. Parse estrito dos enums enviados.
	if req.AtendimentoEncaminhamento != nil {
		enc, err := models.ParseEncaminhamento(*req.AtendimentoEncaminhamento)
		if err != nil {
			return nil, err
		}
		mut.Encaminhamento = &enc
	}
	if req.AtendimentoStatus != nil {
		ats, err := models.ParseAtendimentoStatus(*req.AtendimentoStatus)
		if err != nil {
			return nil, err
		}
		mut.AtendimentoStatus = &ats
	}

	// 2. Mudança de status passa pela máquina de estados. Pedir o
	//    status atual é no-op (aceito, sem evento).
	novo := anterior
	if req.Status != nil {
		pedido, err := models.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}

		// A pré-condição usa a descrição de atendimento efetiva após
		// o patch: a enviada na requisição, mesmo em branco (é ela que
		// será gravada no passo 3), ou, na sua ausência, a já
		// registrada.
		descEfetiva := ""
		if sol.AtendimentoDescricao != nil {
			descEfetiva = *sol.AtendimentoDescricao
		}
		if req.AtendimentoDescricao != nil {
			descEfetiva = *req.AtendimentoDescricao
		}

		switch err := lifecycle.ValidarTransicao(anterior, pedido, descEfetiva); {
		case err == nil:
			novo = pedido
		case errors.Is(err, lifecycle.ErrSemMudanca):
			// segue com novo == anterior
		default:
			return nil, err
		}
	}

	// 3. Aplica os campos permitidos. Categoria e coordenadas nunca
	//    mudam depois da criação.
	sol.Status = novo
	if req.Descricao != nil {
		sol.Descricao = *req.Descricao
	}
	if req.AtendimentoDescricao != nil {
		sol.AtendimentoDescricao = req.AtendimentoDescricao
	}
	if mut.Encaminhamento != nil {
		sol.AtendimentoEncaminhamento = mut.Encaminhamento
	}
	if mut.AtendimentoStatus != nil {
		sol.AtendimentoStatus = mut.AtendimentoStatus
	}

	if err := s.db.WithContext(ctx).Save(&sol).Error; err != nil {
		return nil, err
	}

	// 4. Deriva e grava no máximo um evento, em melhor esforço.
	if ev := lifecycle.DerivarEvento(sol.ID, anterior, novo, mut); ev != nil {
		if err := s.eventos.Registrar(ctx, ev); err != nil {
			s.log.Warn("falha ao gravar evento de auditoria",
				zap.Uint("solicitacao_id", sol.ID),
				zap.String("tipo", string(ev.Tipo)),
				zap.Error(err))
		}
	}

	return s.carregar(ctx, sol.ID)
}

func (s *solicitacaoService) GetEventos(ctx context.Context, id uint) ([]models.Evento, error) {
	var sol models.Solicitacao
	if err := s.db.WithContext(ctx).Select("id_solicitacao").First(&sol, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNaoEncontrado
		}
		return nil, err
	}

	return s.eventos.ListarPorSolicitacao(ctx, id)
}

// carregar relê a solicitação com autor e anexos para devolver o
// objeto completo ao controller.
func (s *solicitacaoService) carregar(ctx context.Context, id uint) (*models.Solicitacao, error) {
	var sol models.Solicitacao
	err := s.db.WithContext(ctx).
		Preload("Autor").
		Preload("Anexos").
		First(&sol, id).Error
	if err != nil {
		return nil, err
	}
	return &sol, nil
}

// garantirAutorDemo cria o usuário de demonstração na primeira vez
// que uma solicitação anônima aparece.
func (s *solicitacaoService) garantirAutorDemo(ctx context.Context) error {
	demo := models.Usuario{
		ID:    s.demoAutorID,
		Nome:  "Visitante",
		Login: "visitante@cortapau.local",
		Role:  models.RoleCidadao,
	}
	return s.db.WithContext(ctx).
		Where("id_usuario = ?", s.demoAutorID).
		FirstOrCreate(&demo).Error
}
