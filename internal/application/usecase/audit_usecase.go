package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

// AuditUseCase consulta a trilha de auditoria e registra eventos de sessão.
type AuditUseCase struct {
	repo repository.AuditLogRepository
	now  Clock
}

// NewAuditUseCase constrói o caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo, now: defaultClock}
}

// List devolve a trilha filtrada (somente ADMIN). "ate" inclui o dia inteiro.
func (uc *AuditUseCase) List(ctx context.Context, actor permission.Actor, q dto.AuditLogQuery) (*dto.ListResponse[dto.AuditLogResponse], error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	f := repository.AuditLogFilter{
		UserID:   strings.TrimSpace(q.UserID),
		Entity:   strings.TrimSpace(q.Entity),
		EntityID: strings.TrimSpace(q.EntityID),
	}
	v := domain.NewValidationError()
	if q.From != "" {
		if d, ok := parseDate("de", q.From, v); ok {
			f.From = &d
		}
	}
	if q.To != "" {
		if d, ok := parseDate("ate", q.To, v); ok {
			end := d.AddDate(0, 0, 1).Add(-time.Millisecond)
			f.To = &end
		}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		v.Add("de", "data inicial posterior à final")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	f.Page = toRepoPage(&q.PageRequest)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.AuditLogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Details:   l.Details,
			IP:        l.IP,
			CreatedAt: l.CreatedAt,
		})
	}
	return &dto.ListResponse[dto.AuditLogResponse]{Items: items, Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// RecordSession registra login/logout. Falhas são devolvidas para o chamador apenas logar.
func (uc *AuditUseCase) RecordSession(ctx context.Context, actor permission.Actor, action, ip string) error {
	return uc.repo.Create(ctx, newAuditLog(actor, action, entityUsuario, actor.UserID, ip, nil, uc.now()))
}
