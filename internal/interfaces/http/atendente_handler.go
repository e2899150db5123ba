package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
)

// AtendenteHandler trata /api/atendentes.
type AtendenteHandler struct {
	uc *usecase.AtendenteUseCase
}

// NewAtendenteHandler constrói o handler.
func NewAtendenteHandler(uc *usecase.AtendenteUseCase) *AtendenteHandler {
	return &AtendenteHandler{uc: uc}
}

// List godoc
// @Summary      Listar atendentes
// @Tags         atendentes
// @Produce      json
// @Param        status  query  string  false  "ATIVO|FERIAS|AFASTADO|INATIVO"
// @Param        cargo   query  string  false  "cargo"
// @Param        setor   query  string  false  "setor"
// @Param        busca   query  string  false  "nome, email ou CPF"
// @Success      200  {object}  dto.APIResponse
// @Router       /api/atendentes [get]
func (h *AtendenteHandler) List(c *fiber.Ctx) error {
	var q dto.AtendenteListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID GET /api/atendentes/:id
func (h *AtendenteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Criar atendente
// @Tags         atendentes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAtendenteRequest  true  "atendente"
// @Success      201  {object}  dto.APIResponse{data=dto.AtendenteResponse}
// @Failure      400  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/atendentes [post]
func (h *AtendenteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAtendenteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Update PATCH /api/atendentes/:id
func (h *AtendenteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAtendenteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
