package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/koerner360/koerner360-api/pkg/logger"
)

// requestIDKey é a chave padrão do middleware requestid do Fiber.
const requestIDKey = "requestid"

const loggerKey = "logger"

// requestLogger devolve o logger da requisição com o request id, ou um logger
// que descarta tudo quando RequestLogger não está na cadeia.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(loggerKey).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok && id != "" {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// RequestLogger registra método, caminho, status, duração e request id de cada requisição.
// Respostas 5xx saem em nível error.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rl := l.With("request_id", requestID(c))
		c.Locals(loggerKey, rl)
		err := c.Next()
		if err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = rl.Error()
		case status >= fiber.StatusBadRequest:
			ev = rl.Warn()
		default:
			ev = rl.Info()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}
