package http

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/koerner360/koerner360-api/internal/application/auth"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	AtendenteUC    *usecase.AtendenteUseCase
	AvaliacaoUC    *usecase.AvaliacaoUseCase
	FeedbackUC     *usecase.FeedbackUseCase
	ChangelogUC    *usecase.ChangelogUseCase
	AuditUC        *usecase.AuditUseCase
	MetricsUC      *usecase.MetricsUseCase
	DashboardUC    *usecase.DashboardUseCase
	SecureCookie   bool
	LoginRateLimit int // tentativas por minuto por IP; 0 desliga
}

const (
	admin      = entity.RoleAdmin
	supervisor = entity.RoleSupervisor
	consultor  = entity.RoleConsultor
)

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", loginLimiter(deps.LoginRateLimit), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rotas protegidas (sessão por Bearer ou cookie)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/auth/session", authHandler.Session)

	users := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/permissoes", userHandler.Permissions)
	users.Get("/", RequireRole(admin, supervisor), userHandler.List)
	users.Post("/", RequireRole(admin, supervisor), userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Patch("/:id/status", RequireRole(admin, supervisor), userHandler.SetStatus)

	atendentes := protected.Group("/atendentes")
	atendenteHandler := NewAtendenteHandler(deps.AtendenteUC)
	atendentes.Get("/", RequireRole(admin, supervisor, consultor), atendenteHandler.List)
	atendentes.Post("/", RequireRole(admin, supervisor), atendenteHandler.Create)
	atendentes.Get("/:id", atendenteHandler.GetByID)
	atendentes.Patch("/:id", RequireRole(admin, supervisor), atendenteHandler.Update)

	avaliacoes := protected.Group("/avaliacoes")
	avaliacaoHandler := NewAvaliacaoHandler(deps.AvaliacaoUC)
	avaliacoes.Get("/", avaliacaoHandler.List)
	avaliacoes.Post("/", RequireRole(admin, supervisor), avaliacaoHandler.Create)
	avaliacoes.Get("/:id", avaliacaoHandler.GetByID)
	avaliacoes.Patch("/:id", RequireRole(admin, supervisor), avaliacaoHandler.Update)

	feedbacks := protected.Group("/feedbacks")
	feedbackHandler := NewFeedbackHandler(deps.FeedbackUC)
	feedbacks.Get("/", feedbackHandler.List)
	feedbacks.Post("/", RequireRole(admin, supervisor), feedbackHandler.Create)
	feedbacks.Get("/:id", feedbackHandler.GetByID)
	feedbacks.Patch("/:id", RequireRole(admin, supervisor), feedbackHandler.Update)

	changelog := protected.Group("/changelog")
	changelogHandler := NewChangelogHandler(deps.ChangelogUC)
	changelog.Get("/", changelogHandler.List)
	changelog.Post("/", RequireRole(admin), changelogHandler.Create)
	changelog.Get("/:id", changelogHandler.GetByID)
	changelog.Patch("/:id", RequireRole(admin), changelogHandler.Update)

	protected.Get("/audit-logs", RequireRole(admin), NewAuditHandler(deps.AuditUC).List)
	protected.Get("/dashboard/resumo", NewDashboardHandler(deps.DashboardUC).Resumo)

	metricas := protected.Group("/metricas")
	metricsHandler := NewMetricsHandler(deps.MetricsUC)
	metricas.Get("/ranking", RequireRole(admin, supervisor, consultor), metricsHandler.Ranking)
	metricas.Get("/ranking/pdf", RequireRole(admin, consultor), metricsHandler.RankingPDF)
	metricas.Get("/resumo", RequireRole(admin, supervisor, consultor), metricsHandler.Resumo)
	metricas.Get("/atendentes/:id", metricsHandler.AtendenteDetail)
}

// Pages serve o build estático do frontend atrás do guard de páginas.
// Caminhos sem arquivo caem no index.html (roteamento no cliente).
func Pages(app *fiber.App, sessions *auth.AuthUseCase, staticDir string) {
	app.Use(PageGuard(sessions))
	app.Static("/", staticDir)
	index := filepath.Join(staticDir, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		if !isPageRequest(c.Path()) {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})
}

func loginLimiter(maxPerMinute int) fiber.Handler {
	if maxPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        maxPerMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, CodeRateLimited, "muitas tentativas de login, aguarde um minuto", nil)
		},
	})
}
