package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/koerner360/koerner360-api/internal/application/auth"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
	infrapdf "github.com/koerner360/koerner360-api/internal/infrastructure/pdf"
	"github.com/koerner360/koerner360-api/internal/infrastructure/postgres"
	httpRouter "github.com/koerner360/koerner360-api/internal/interfaces/http"
	"github.com/koerner360/koerner360-api/pkg/config"
	"github.com/koerner360/koerner360-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	atendenteRepo := postgres.NewAtendenteRepository(pool)
	avaliacaoRepo := postgres.NewAvaliacaoRepository(pool)
	feedbackRepo := postgres.NewFeedbackRepository(pool)
	changelogRepo := postgres.NewChangelogRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	metricsRepo := postgres.NewMetricsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditUC := usecase.NewAuditUseCase(auditRepo)
	authUC := auth.NewAuthUseCase(userRepo, auditUC, auth.JWTConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.MaxAge,
		Issuer:     cfg.Session.Issuer,
	}, log.Component("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowCredentials: true,
	}))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Koerner 360 API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(userRepo, atendenteRepo, txRunner),
		AtendenteUC:    usecase.NewAtendenteUseCase(atendenteRepo, userRepo, txRunner),
		AvaliacaoUC:    usecase.NewAvaliacaoUseCase(avaliacaoRepo, atendenteRepo, txRunner),
		FeedbackUC:     usecase.NewFeedbackUseCase(feedbackRepo, atendenteRepo, txRunner),
		ChangelogUC:    usecase.NewChangelogUseCase(changelogRepo, txRunner),
		AuditUC:        auditUC,
		MetricsUC:      usecase.NewMetricsUseCase(metricsRepo, atendenteRepo, infrapdf.NewRankingPDFGenerator()),
		DashboardUC:    usecase.NewDashboardUseCase(metricsRepo),
		SecureCookie:   cfg.Session.SecureCookie,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
	})
	httpRouter.Pages(app, authUC, cfg.HTTP.StaticDir)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
