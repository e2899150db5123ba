package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
)

// MetricsHandler trata /api/metricas.
type MetricsHandler struct {
	uc *usecase.MetricsUseCase
}

// NewMetricsHandler constrói o handler.
func NewMetricsHandler(uc *usecase.MetricsUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// Ranking godoc
// @Summary      Ranking de atendentes
// @Tags         metricas
// @Produce      json
// @Param        periodo     query  string  false  "7d|30d|90d|1y|mes_atual|custom (padrão 30d)"
// @Param        inicio      query  string  false  "YYYY-MM-DD (custom)"
// @Param        fim         query  string  false  "YYYY-MM-DD (custom)"
// @Param        cargo       query  string  false  "cargo"
// @Param        setor       query  string  false  "setor"
// @Param        ordenarPor  query  string  false  "media|satisfacao|total|pontos|nome"
// @Param        ordem       query  string  false  "asc|desc"
// @Param        page        query  int     false  "página"
// @Param        limit       query  int     false  "itens por página (padrão 10, máx. 100)"
// @Success      200  {object}  dto.APIResponse{data=dto.RankingResponseDTO}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/metricas/ranking [get]
func (h *MetricsHandler) Ranking(c *fiber.Ctx) error {
	var q dto.MetricsQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Ranking(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Resumo godoc
// @Summary      Resumo do período
// @Tags         metricas
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.ResumoDTO}
// @Router       /api/metricas/resumo [get]
func (h *MetricsHandler) Resumo(c *fiber.Ctx) error {
	var q dto.MetricsQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Resumo(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// AtendenteDetail GET /api/metricas/atendentes/:id
func (h *MetricsHandler) AtendenteDetail(c *fiber.Ctx) error {
	var q dto.MetricsQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.AtendenteDetail(c.Context(), GetActor(c), c.Params("id"), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// RankingPDF godoc
// @Summary      Ranking em PDF
// @Tags         metricas
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/metricas/ranking/pdf [get]
func (h *MetricsHandler) RankingPDF(c *fiber.Ctx) error {
	var q dto.MetricsQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	generatedBy := ""
	if claims := GetClaims(c); claims != nil {
		generatedBy = claims.Name
	}
	pdf, err := h.uc.RankingPDF(c.Context(), GetActor(c), q, generatedBy)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ranking-%s.pdf"`, now().Format("2006-01-02")))
	return c.Send(pdf)
}
