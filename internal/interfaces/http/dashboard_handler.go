package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/usecase"
)

// DashboardHandler trata o painel inicial.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumo devolve contadores e destaques do mês no recorte do perfil.
// GET /api/dashboard/resumo
//
// Sem parâmetros; o mês corrente é calculado no servidor.
func (h *DashboardHandler) Resumo(c *fiber.Ctx) error {
	out, err := h.uc.Resumo(c.Context(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
