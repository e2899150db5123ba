package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
)

// ChangelogHandler trata /api/changelog.
type ChangelogHandler struct {
	uc *usecase.ChangelogUseCase
}

// NewChangelogHandler constrói o handler.
func NewChangelogHandler(uc *usecase.ChangelogUseCase) *ChangelogHandler {
	return &ChangelogHandler{uc: uc}
}

// List godoc
// @Summary      Listar versões
// @Description  Rascunhos aparecem apenas para ADMIN.
// @Tags         changelog
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Router       /api/changelog [get]
func (h *ChangelogHandler) List(c *fiber.Ctx) error {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), GetActor(c), p)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID GET /api/changelog/:id
func (h *ChangelogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Publicar versão
// @Tags         changelog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateChangelogRequest  true  "versão e itens"
// @Success      201  {object}  dto.APIResponse{data=dto.ChangelogResponse}
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/changelog [post]
func (h *ChangelogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateChangelogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Update PATCH /api/changelog/:id
func (h *ChangelogHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateChangelogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
