package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

// Clock devolve o instante atual; substituível nos testes.
type Clock func() time.Time

func defaultClock() time.Time { return time.Now() }

// scopeFor traduz o perfil do ator no recorte das listagens.
func scopeFor(a permission.Actor) (repository.Scope, error) {
	if a.UserID == "" {
		return repository.Scope{}, domain.ErrUnauthorized
	}
	caps := permission.For(a.Role)
	switch {
	case caps.CanViewAll:
		return repository.Scope{}, nil
	case caps.CanViewTeam:
		return repository.Scope{SupervisorID: a.UserID}, nil
	}
	return repository.Scope{UserID: a.UserID}, nil
}

func toRepoPage(p *dto.PageRequest) repository.Page {
	p.Normalize()
	return repository.Page{Limit: p.Limit, Offset: p.Offset()}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	return s != "" && govalidator.IsEmail(s)
}

// onlyDigits remove pontuação de CPF e telefone.
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseDate(field, s string, v *domain.ValidationError) (time.Time, bool) {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		v.Add(field, "data inválida, use AAAA-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

func formatDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

// newAuditLog monta o registro de auditoria; details é serializado em JSON.
func newAuditLog(actor permission.Actor, action, ent, entityID, ip string, details any, at time.Time) *entity.AuditLog {
	raw := "{}"
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			raw = string(b)
		}
	}
	return &entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    actor.UserID,
		Action:    action,
		Entity:    ent,
		EntityID:  entityID,
		Details:   raw,
		IP:        ip,
		CreatedAt: at,
	}
}
