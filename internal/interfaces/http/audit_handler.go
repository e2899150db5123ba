package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
)

// AuditHandler trata /api/audit-logs.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler constrói o handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Trilha de auditoria
// @Tags         auditoria
// @Produce      json
// @Param        usuarioId   query  string  false  "autor da ação"
// @Param        entidade    query  string  false  "usuario|atendente|avaliacao|feedback|changelog"
// @Param        entidadeId  query  string  false  "id do registro"
// @Param        de          query  string  false  "YYYY-MM-DD"
// @Param        ate         query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var q dto.AuditLogQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
