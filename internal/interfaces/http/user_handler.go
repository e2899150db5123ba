package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/usecase"
	"github.com/koerner360/koerner360-api/internal/domain"
)

// UserHandler trata /api/usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler constrói o handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuários
// @Tags         usuarios
// @Produce      json
// @Param        page         query  int     false  "página (1..)"
// @Param        limit        query  int     false  "itens por página (máx. 100)"
// @Param        tipoUsuario  query  string  false  "ADMIN|SUPERVISOR|ATENDENTE|CONSULTOR"
// @Param        ativo        query  string  false  "true|false"
// @Param        busca        query  string  false  "nome ou email"
// @Success      200  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID GET /api/usuarios/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Criar usuário
// @Description  Com criarAtendente=true cria e vincula o atendente na mesma transação.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "usuário"
// @Success      201  {object}  dto.APIResponse{data=dto.UserResponse}
// @Failure      400  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Update PATCH /api/usuarios/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// SetStatus PATCH /api/usuarios/:id/status
func (h *UserHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Active == nil {
		return writeError(c, domain.NewValidationError().With("ativo", "campo obrigatório"))
	}
	out, err := h.uc.SetStatus(c.Context(), GetActor(c), c.Params("id"), *in.Active, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Permissions GET /api/usuarios/permissoes: capacidades do próprio perfil.
func (h *UserHandler) Permissions(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, h.uc.Permissions(GetActor(c)))
}
