package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
)

// AvaliacaoHandler trata /api/avaliacoes.
type AvaliacaoHandler struct {
	uc *usecase.AvaliacaoUseCase
}

// NewAvaliacaoHandler constrói o handler.
func NewAvaliacaoHandler(uc *usecase.AvaliacaoUseCase) *AvaliacaoHandler {
	return &AvaliacaoHandler{uc: uc}
}

// List godoc
// @Summary      Listar avaliações (recorte pelo perfil)
// @Tags         avaliacoes
// @Produce      json
// @Param        atendenteId  query  string  false  "atendente avaliado"
// @Param        avaliadorId  query  string  false  "autor"
// @Param        periodo      query  string  false  "YYYY-MM"
// @Success      200  {object}  dto.APIResponse
// @Router       /api/avaliacoes [get]
func (h *AvaliacaoHandler) List(c *fiber.Ctx) error {
	var q dto.AvaliacaoListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID GET /api/avaliacoes/:id
func (h *AvaliacaoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Registrar avaliação
// @Tags         avaliacoes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAvaliacaoRequest  true  "nota 1..5"
// @Success      201  {object}  dto.APIResponse{data=dto.AvaliacaoResponse}
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/avaliacoes [post]
func (h *AvaliacaoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAvaliacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Update PATCH /api/avaliacoes/:id
func (h *AvaliacaoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAvaliacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
