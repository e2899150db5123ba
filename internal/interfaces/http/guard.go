package http

import (
	"net/url"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
)

const loginPath = "/login"

// pageRule associa um prefixo de página aos perfis que podem acessá-lo.
type pageRule struct {
	prefix string
	roles  []string
}

// pageRules em ordem; vale a primeira que casar. Páginas fora da lista exigem apenas sessão.
var pageRules = []pageRule{
	{"/usuarios", []string{entity.RoleAdmin, entity.RoleSupervisor}},
	{"/atendentes", []string{entity.RoleAdmin, entity.RoleSupervisor}},
	{"/avaliacoes", []string{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleAtendente}},
	{"/feedbacks", []string{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleAtendente}},
	{"/consultor", []string{entity.RoleConsultor, entity.RoleAdmin}},
	{"/auditoria", []string{entity.RoleAdmin}},
	{"/admin", []string{entity.RoleAdmin}},
}

var publicPages = map[string]bool{loginPath: true, "/": true}

// sessionState resultado da leitura da sessão para o guard.
type sessionState int

const (
	sessionMissing sessionState = iota
	sessionInvalid
	sessionValid
)

// guardDecision o que fazer com a requisição de página. Redirect vazio libera.
type guardDecision struct {
	Redirect     string
	ClearCookies bool
}

// decidePage aplica as regras do guard para uma página. requestURI é usado no callbackUrl.
func decidePage(p, requestURI string, state sessionState, role string) guardDecision {
	public := publicPages[p]
	switch state {
	case sessionMissing:
		if public {
			return guardDecision{}
		}
		return guardDecision{Redirect: loginPath + "?callbackUrl=" + url.QueryEscape(requestURI)}
	case sessionInvalid:
		if public {
			return guardDecision{ClearCookies: true}
		}
		return guardDecision{Redirect: loginPath, ClearCookies: true}
	}

	home := permission.HomePath(role)
	if p == loginPath {
		return guardDecision{Redirect: home}
	}
	if public {
		return guardDecision{}
	}
	for _, r := range pageRules {
		if p == r.prefix || strings.HasPrefix(p, r.prefix+"/") {
			for _, allowed := range r.roles {
				if role == allowed {
					return guardDecision{}
				}
			}
			return guardDecision{Redirect: home + "?error=unauthorized"}
		}
	}
	return guardDecision{}
}

// isPageRequest separa páginas de API, docs, health e arquivos estáticos.
func isPageRequest(p string) bool {
	for _, prefix := range []string{"/api", "/health", "/docs"} {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return false
		}
	}
	return path.Ext(p) == ""
}

// PageGuard protege as páginas do frontend com redirecionamentos.
func PageGuard(sessions sessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Path()
		if !isPageRequest(p) {
			return c.Next()
		}
		state, role := sessionMissing, ""
		if token := sessionToken(c); token != "" {
			claims, err := sessions.ParseToken(token)
			if err != nil {
				state = sessionInvalid
			} else {
				state, role = sessionValid, claims.Role
				setSession(c, claims)
			}
		}
		d := decidePage(p, c.OriginalURL(), state, role)
		if d.ClearCookies {
			clearSessionCookies(c)
		}
		if d.Redirect != "" {
			return c.Redirect(d.Redirect, fiber.StatusFound)
		}
		return c.Next()
	}
}
