package repository

import (
	"context"
	"time"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

// AuditLogFilter filtros da trilha de auditoria.
type AuditLogFilter struct {
	UserID   string
	Entity   string
	EntityID string
	From     *time.Time
	To       *time.Time
	Page
}

// AuditLogRepository define o porto de persistência da auditoria (somente inserção e leitura).
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, f AuditLogFilter) ([]*entity.AuditLog, int, error)
}
