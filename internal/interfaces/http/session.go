package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Nomes do cookie de sessão.
const (
	SessionCookie       = "koerner360.session-token"
	SecureSessionCookie = "__Secure-koerner360.session-token"
)

// legacyCookies são removidos quando a sessão não decodifica.
var legacyCookies = []string{
	"next-auth.session-token",
	"__Secure-next-auth.session-token",
	"next-auth.csrf-token",
	"next-auth.callback-url",
}

// CookieConfig define nome e atributos do cookie de sessão.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

func (cc CookieConfig) name() string {
	if cc.Secure {
		return SecureSessionCookie
	}
	return SessionCookie
}

// setSessionCookie grava o token no cookie HttpOnly.
func setSessionCookie(c *fiber.Ctx, cc CookieConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cc.name(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(cc.MaxAge / time.Second),
		Expires:  now().Add(cc.MaxAge),
		Secure:   cc.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookies expira os cookies próprios e os legados.
func clearSessionCookies(c *fiber.Ctx) {
	names := append([]string{SessionCookie, SecureSessionCookie}, legacyCookies...)
	for _, n := range names {
		c.Cookie(&fiber.Cookie{
			Name:     n,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			Secure:   strings.HasPrefix(n, "__Secure-"),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}

// sessionToken lê o token do header Bearer ou, na falta dele, do cookie.
func sessionToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if t := c.Cookies(SecureSessionCookie); t != "" {
		return t
	}
	return c.Cookies(SessionCookie)
}
