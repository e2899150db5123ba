package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koerner360/koerner360-api/internal/application/auth"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	apphttp "github.com/koerner360/koerner360-api/internal/interfaces/http"
	pkgjwt "github.com/koerner360/koerner360-api/pkg/jwt"
	"github.com/koerner360/koerner360-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "koerner360-test"
	testExpMin = 60
)

func testAuthUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(nil, nil, auth.JWTConfig{Secret: testSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, logger.Nop())
}

// buildTestApp monta um app mínimo com AuthMiddleware + RequireRole e um handler que devolve 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/api/protected",
		apphttp.AuthMiddleware(testAuthUC()),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c), "user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: testUserID, Name: "Teste", Role: role}, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func doGet(t *testing.T, app *fiber.App, path string, setup func(r *http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if setup != nil {
		setup(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bearer(tok string) func(r *http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	return body.Error.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAcessaRotaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doGet(t, app, "/api/protected", bearer(tokenFor(t, entity.RoleAdmin)))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.RoleAdmin, body["role"])
	assert.Equal(t, testUserID, body["user_id"])
}

func TestRequireRole_MultiplosPerfis(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleSupervisor, entity.RoleConsultor)
	for _, role := range []string{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleConsultor} {
		resp := doGet(t, app, "/api/protected", bearer(tokenFor(t, role)))
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, role)
	}
}

func TestRequireRole_PerfilNaoPermitido_403(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doGet(t, app, "/api/protected", bearer(tokenFor(t, entity.RoleConsultor)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apphttp.CodeForbidden, errorCode(t, resp))
}

func TestRequireRole_TokenSemPerfil_401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doGet(t, app, "/api/protected", bearer(tokenFor(t, "")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SemSessao_401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doGet(t, app, "/api/protected", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeUnauthorized, errorCode(t, resp))
}

func TestAuthMiddleware_TokenInvalido_LimpaCookies(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doGet(t, app, "/api/protected", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: "token.invalido.aqui"})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidSession, errorCode(t, resp))

	cleared := strings.Join(resp.Header.Values("Set-Cookie"), "\n")
	assert.Contains(t, cleared, apphttp.SessionCookie+"=;")
	assert.Contains(t, cleared, "next-auth.session-token=;")
	assert.Contains(t, cleared, "next-auth.csrf-token=;")
}

func TestAuthMiddleware_TokenExpirado_401(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: testUserID, Role: entity.RoleAdmin}, testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(entity.RoleAdmin)
	resp := doGet(t, app, "/api/protected", bearer(tok))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidSession, errorCode(t, resp))
}

func TestAuthMiddleware_SessaoPorCookie(t *testing.T) {
	app := buildTestApp(entity.RoleSupervisor)
	resp := doGet(t, app, "/api/protected", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: tokenFor(t, entity.RoleSupervisor)})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_CookieSecure(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doGet(t, app, "/api/protected", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.SecureSessionCookie, Value: tokenFor(t, entity.RoleAdmin)})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
