package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/domain"
)

// Códigos de erro do envelope.
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeInvalidSession = "INVALID_SESSION"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeValidation     = "VALIDATION"
	CodeInvalidBody    = "INVALID_BODY"
	CodeRateLimited    = "RATE_LIMITED"
	CodeInternal       = "INTERNAL"
)

var now = time.Now

// ok responde com o envelope de sucesso.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.APIResponse{Success: true, Data: data, Timestamp: now().UTC()})
}

// fail responde com o envelope de erro.
func fail(c *fiber.Ctx, status int, code, message string, details map[string]string) error {
	return c.Status(status).JSON(dto.APIResponse{
		Success:   false,
		Error:     &dto.ErrorResponse{Code: code, Message: message, Details: details},
		Timestamp: now().UTC(),
	})
}

// writeError converte erros de domínio em status HTTP. Erros sem classe viram 500
// com mensagem genérica; o erro real vai para o log da requisição.
func writeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, fiber.StatusBadRequest, CodeValidation, "dados inválidos", verr.Fields)
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, CodeForbidden, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, CodeNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, CodeConflict, err.Error(), nil)
	}
	requestLogger(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("erro interno")
	return fail(c, fiber.StatusInternalServerError, CodeInternal, "erro interno do servidor", nil)
}

func badBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, CodeInvalidBody, "corpo inválido", nil)
}

func badQuery(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, CodeValidation, "parâmetros de consulta inválidos", nil)
}

// ErrorHandler trata erros que escapam dos handlers (404 de rota, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest:
			code = CodeValidation
		}
		if fe.Code < fiber.StatusInternalServerError {
			return fail(c, fe.Code, code, fe.Message, nil)
		}
	}
	return writeError(c, err)
}
