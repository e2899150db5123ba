package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/auth"
	"github.com/koerner360/koerner360-api/internal/application/dto"
)

// AuthHandler trata login, logout e sessão.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	secure bool
}

// NewAuthHandler constrói o handler de auth. secure define o nome e o atributo Secure do cookie.
func NewAuthHandler(uc *auth.AuthUseCase, secure bool) *AuthHandler {
	return &AuthHandler{uc: uc, secure: secure}
}

func (h *AuthHandler) cookie() CookieConfig {
	return CookieConfig{Secure: h.secure, MaxAge: h.uc.MaxAge()}
}

// Login godoc
// @Summary      Iniciar sessão
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, senha"
// @Success      200   {object}  dto.APIResponse{data=dto.LoginResponse}
// @Failure      401   {object}  dto.APIResponse
// @Failure      403   {object}  dto.APIResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.Context(), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	setSessionCookie(c, h.cookie(), out.Token)
	return ok(c, fiber.StatusOK, out)
}

// Logout godoc
// @Summary      Encerrar sessão
// @Description  Limpa os cookies mesmo sem sessão válida.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := sessionToken(c); token != "" {
		if claims, err := h.uc.ParseToken(token); err == nil {
			setSession(c, claims)
			if err := h.uc.Logout(c.Context(), GetActor(c), c.IP()); err != nil {
				return writeError(c, err)
			}
		}
	}
	clearSessionCookies(c)
	return ok(c, fiber.StatusOK, fiber.Map{"message": "sessão encerrada"})
}

// Session godoc
// @Summary      Sessão atual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.SessionResponse}
// @Failure      401  {object}  dto.APIResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	claims := GetClaims(c)
	if claims == nil {
		return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "sessão requerida", nil)
	}
	return ok(c, fiber.StatusOK, h.uc.Session(claims))
}
