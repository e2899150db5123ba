package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
)

// FeedbackHandler trata /api/feedbacks.
type FeedbackHandler struct {
	uc *usecase.FeedbackUseCase
}

// NewFeedbackHandler constrói o handler.
func NewFeedbackHandler(uc *usecase.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

// List godoc
// @Summary      Listar feedbacks (recorte pelo perfil)
// @Tags         feedbacks
// @Produce      json
// @Param        destinatarioId  query  string  false  "atendente destinatário"
// @Param        tipo            query  string  false  "ELOGIO|SUGESTAO|RECLAMACAO|GERAL"
// @Param        prioridade      query  string  false  "BAIXA|MEDIA|ALTA|URGENTE"
// @Param        status          query  string  false  "PENDENTE|EM_ANALISE|RESOLVIDO|ARQUIVADO"
// @Success      200  {object}  dto.APIResponse
// @Router       /api/feedbacks [get]
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	var q dto.FeedbackListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID GET /api/feedbacks/:id
func (h *FeedbackHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Registrar feedback
// @Tags         feedbacks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFeedbackRequest  true  "feedback"
// @Success      201  {object}  dto.APIResponse{data=dto.FeedbackResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/feedbacks [post]
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Update PATCH /api/feedbacks/:id
func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
