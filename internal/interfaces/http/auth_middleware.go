package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/pkg/jwt"
)

// Locals keys da sessão no Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalClaims = "claims"
)

// sessionParser valida o token de sessão. Implementado por *auth.AuthUseCase.
type sessionParser interface {
	ParseToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware exige sessão válida nas rotas /api.
// Sem token: 401 UNAUTHORIZED. Token inválido ou expirado: 401 INVALID_SESSION e cookies limpos.
func AuthMiddleware(sessions sessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "sessão requerida", nil)
		}
		claims, err := sessions.ParseToken(token)
		if err != nil {
			clearSessionCookies(c)
			return fail(c, fiber.StatusUnauthorized, CodeInvalidSession, "sessão inválida ou expirada", nil)
		}
		setSession(c, claims)
		return c.Next()
	}
}

// RequireRole libera a rota apenas para os perfis informados. Use depois de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "sessão sem perfil", nil)
		}
		if _, ok := allowed[role]; !ok {
			return fail(c, fiber.StatusForbidden, CodeForbidden, "perfil sem acesso a este recurso", nil)
		}
		return c.Next()
	}
}

func setSession(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalRole, claims.Role)
	c.Locals(LocalClaims, claims)
}

// GetUserID devolve o UserID da sessão (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devolve o perfil da sessão.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetClaims devolve os claims completos da sessão ou nil.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// GetActor monta o ator das regras de permissão.
func GetActor(c *fiber.Ctx) permission.Actor {
	return permission.Actor{UserID: GetUserID(c), Role: GetRole(c)}
}
