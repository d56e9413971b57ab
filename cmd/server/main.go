package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/lucasmalaguti/CortaPau/backend/internal/config"
	"github.com/lucasmalaguti/CortaPau/backend/internal/controllers"
	"github.com/lucasmalaguti/CortaPau/backend/internal/database"
	"github.com/lucasmalaguti/CortaPau/backend/internal/models"
	"github.com/lucasmalaguti/CortaPau/backend/internal/services"
)

func main() {
	// Carregar as configs
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Falha ao carregar configs: %v", err)
	}

	// Logger estruturado
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Falha ao criar logger: %v", err)
	}
	defer logger.Sync()

	// Conectar ao banco
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Falha ao conectar banco de dados", zap.Error(err))
	}

	// Auto-migrate -> a estudar (provisorio; cmd/migrate cobre produção)
	if err := db.AutoMigrate(&models.Usuario{}, &models.Solicitacao{}, &models.Anexo{}, &models.Evento{}); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	// Instancia serviços
	eventoSvc := services.NewEventoService(db)
	solicitacaoSvc := services.NewSolicitacaoService(db, eventoSvc, logger, cfg.DemoAutorID)
	authSvc := services.NewAuthService(db, cfg.JWTSecret)
	uploadSvc := services.NewUploadService(cfg.UploadDir, cfg.UploadBaseURL)

	// Cria controllers
	solicitacaoCtrl := controllers.NewSolicitacaoController(solicitacaoSvc)
	authCtrl := controllers.NewAuthController(authSvc)
	uploadCtrl := controllers.NewUploadController(uploadSvc)

	// Inicializa Echo
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Registra rotas
	api := e.Group("")
	solicitacaoCtrl.Register(api)
	authCtrl.Register(api)
	uploadCtrl.Register(api)

	// Fotos enviadas ficam servidas como estáticos
	e.Static("/uploads", cfg.UploadDir)

	// Roda Servidor
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
