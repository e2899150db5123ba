package postgres

import (
	"context"
	"fmt"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementação de AuditLogRepository (pool ou tx). Só insere e lê.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository constrói o adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create grava um registro de auditoria.
func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, usuario_id, acao, entidade, entidade_id, detalhes, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.UserID, l.Action, l.Entity, l.EntityID, l.Details, l.IP, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List lista registros, mais recentes primeiro.
func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditLogFilter) ([]*entity.AuditLog, int, error) {
	var w whereBuilder
	if f.UserID != "" {
		w.add("l.usuario_id = $%d", f.UserID)
	}
	if f.Entity != "" {
		w.add("l.entidade = $%d", f.Entity)
	}
	if f.EntityID != "" {
		w.add("l.entidade_id = $%d", f.EntityID)
	}
	if f.From != nil {
		w.add("l.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("l.created_at <= $%d", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs l`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}
	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.usuario_id, l.acao, l.entidade, l.entidade_id, COALESCE(l.detalhes, '{}'), COALESCE(l.ip, ''), l.created_at
		FROM audit_logs l`+w.String()+` ORDER BY l.created_at DESC, l.id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditLog, 0)
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Entity, &l.EntityID, &l.Details, &l.IP, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
