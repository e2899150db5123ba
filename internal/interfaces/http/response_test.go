package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/pkg/logger"
)

func errorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/x", func(c *fiber.Ctx) error { return writeError(c, err) })
	return app
}

func decodeEnvelope(t *testing.T, app *fiber.App, path string) (int, dto.APIResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body dto.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestWriteError_MapeiaClasses(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
		{domain.ErrInactiveUser, http.StatusForbidden, CodeForbidden},
		{domain.ErrRoleNotManageable, http.StatusForbidden, CodeForbidden},
		{domain.ErrAtendenteNotFound, http.StatusNotFound, CodeNotFound},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, CodeConflict},
		{fmt.Errorf("criar usuario: %w", domain.ErrDuplicateAvaliacao), http.StatusConflict, CodeConflict},
		{domain.ErrInvalidPeriod, http.StatusBadRequest, CodeValidation},
		{errors.New("pool fechado"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, body := decodeEnvelope(t, errorApp(tt.err), "/x")
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestWriteError_InternoNaoVazaMensagem(t *testing.T) {
	_, body := decodeEnvelope(t, errorApp(errors.New("senha do banco: xyz")), "/x")
	require.NotNil(t, body.Error)
	assert.NotContains(t, body.Error.Message, "xyz")
}

func TestWriteError_ValidacaoComDetalhes(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("email", "email inválido")
	verr.Add("nome", "obrigatório")

	status, body := decodeEnvelope(t, errorApp(verr), "/x")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, CodeValidation, body.Error.Code)
	assert.Equal(t, map[string]string{"email": "email inválido", "nome": "obrigatório"}, body.Error.Details)
}

func TestErrorHandler_RotaInexistente(t *testing.T) {
	status, body := decodeEnvelope(t, errorApp(nil), "/nao-existe")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, CodeNotFound, body.Error.Code)
}

func TestWriteError_LogaErroInternoComRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "debug", Output: &buf})
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(requestid.New())
	app.Use(RequestLogger(l))
	app.Get("/x", func(c *fiber.Ctx) error { return writeError(c, errors.New("pool fechado")) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	reqID := resp.Header.Get(fiber.HeaderXRequestID)
	require.NotEmpty(t, reqID)

	var entries []map[string]any
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var e map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 2)
	assert.Equal(t, "erro interno", entries[0]["message"])
	assert.Equal(t, "pool fechado", entries[0]["error"])
	assert.Equal(t, reqID, entries[0]["request_id"])
	assert.Equal(t, "request", entries[1]["message"])
	assert.Equal(t, reqID, entries[1]["request_id"])
	assert.EqualValues(t, http.StatusInternalServerError, entries[1]["status"])
}

func TestWriteError_SemRequestLoggerNaoPanica(t *testing.T) {
	status, body := decodeEnvelope(t, errorApp(errors.New("sem logger")), "/x")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, CodeInternal, body.Error.Code)
}
