package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/ports"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

const (
	entityAtendente = "atendente"
	cpfLength       = 11
)

// AtendenteUseCase casos de uso de atendentes.
type AtendenteUseCase struct {
	repo  repository.AtendenteRepository
	users repository.UserRepository
	tx    ports.TxRunner
	now   Clock
}

// NewAtendenteUseCase constrói o caso de uso.
func NewAtendenteUseCase(repo repository.AtendenteRepository, users repository.UserRepository, tx ports.TxRunner) *AtendenteUseCase {
	return &AtendenteUseCase{repo: repo, users: users, tx: tx, now: defaultClock}
}

// List lista atendentes no escopo do ator.
func (uc *AtendenteUseCase) List(ctx context.Context, actor permission.Actor, q dto.AtendenteListQuery) (*dto.ListResponse[dto.AtendenteResponse], error) {
	scope, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}
	if q.Status != "" && !entity.IsValidAtendenteStatus(q.Status) {
		return nil, domain.NewValidationError().With("status", "status inválido")
	}
	f := repository.AtendenteFilter{
		Scope:  scope,
		Status: q.Status,
		Cargo:  strings.TrimSpace(q.Cargo),
		Setor:  strings.TrimSpace(q.Setor),
		Search: strings.TrimSpace(q.Search),
		Page:   toRepoPage(&q.PageRequest),
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AtendenteResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAtendenteResponse(a))
	}
	return &dto.ListResponse[dto.AtendenteResponse]{Items: items, Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// GetByID devolve o atendente se o ator puder vê-lo.
func (uc *AtendenteUseCase) GetByID(ctx context.Context, actor permission.Actor, id string) (*dto.AtendenteResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanAccessRecord(actor, a.OwnerID(), a.SupervisorIDValue()) {
		return nil, domain.ErrForbidden
	}
	return ToAtendenteResponse(a), nil
}

// Create cadastra um atendente, opcionalmente vinculado a um usuário ATENDENTE.
func (uc *AtendenteUseCase) Create(ctx context.Context, actor permission.Actor, in dto.CreateAtendenteRequest, ip string) (*dto.AtendenteResponse, error) {
	if !permission.For(actor.Role).CanCreate {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	v := domain.NewValidationError()
	a := buildAtendente(in, now, v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if in.UserID != nil && strings.TrimSpace(*in.UserID) != "" {
		u, err := uc.linkableUser(ctx, actor, strings.TrimSpace(*in.UserID))
		if err != nil {
			return nil, err
		}
		a.UserID = &u.ID
		a.SupervisorID = u.SupervisorID
	}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Atendentes.Create(ctx, a); err != nil {
			return err
		}
		details := map[string]any{"nome": a.Name, "cpf": a.CPF}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditCreate, entityAtendente, a.ID, ip, details, now))
	})
	if err != nil {
		return nil, err
	}
	return ToAtendenteResponse(a), nil
}

// Update altera os dados de um atendente da equipe do ator.
func (uc *AtendenteUseCase) Update(ctx context.Context, actor permission.Actor, id string, in dto.UpdateAtendenteRequest, ip string) (*dto.AtendenteResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanModifyRecord(actor, a.SupervisorIDValue()) {
		return nil, domain.ErrForbidden
	}

	v := domain.NewValidationError()
	changed := []string{}
	set := func(field string, dst *string, src *string, check func(string) bool, msg string) {
		if src == nil {
			return
		}
		val := strings.TrimSpace(*src)
		if check != nil && !check(val) {
			v.Add(field, msg)
			return
		}
		*dst = val
		changed = append(changed, field)
	}
	set("nome", &a.Name, in.Name, func(s string) bool { n := len([]rune(s)); return n >= 2 && n <= 100 }, "deve ter entre 2 e 100 caracteres")
	if in.Email != nil {
		e := normalizeEmail(*in.Email)
		set("email", &a.Email, &e, validEmail, "email inválido")
	}
	if in.CPF != nil {
		c := onlyDigits(*in.CPF)
		set("cpf", &a.CPF, &c, func(s string) bool { return len(s) == cpfLength }, "CPF deve ter 11 dígitos")
	}
	if in.Phone != nil {
		p := onlyDigits(*in.Phone)
		set("telefone", &a.Phone, &p, nil, "")
	}
	set("cargo", &a.Cargo, in.Cargo, nonEmpty, "obrigatório")
	set("setor", &a.Setor, in.Setor, nonEmpty, "obrigatório")
	set("portaria", &a.Portaria, in.Portaria, nil, "")
	set("status", &a.Status, in.Status, entity.IsValidAtendenteStatus, "status inválido")
	set("avatarUrl", &a.AvatarURL, in.AvatarURL, nil, "")
	set("observacoes", &a.Notes, in.Notes, nil, "")
	if in.AdmissionDate != nil {
		if d, ok := parseDate("dataAdmissao", *in.AdmissionDate, v); ok {
			a.AdmissionDate = d
			changed = append(changed, "dataAdmissao")
		}
	}
	if in.BirthDate != nil {
		if strings.TrimSpace(*in.BirthDate) == "" {
			a.BirthDate = nil
			changed = append(changed, "dataNascimento")
		} else if d, ok := parseDate("dataNascimento", *in.BirthDate, v); ok {
			a.BirthDate = &d
			changed = append(changed, "dataNascimento")
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now()
	a.UpdatedAt = now
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Atendentes.Update(ctx, a); err != nil {
			return err
		}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditUpdate, entityAtendente, a.ID, ip, map[string]any{"campos": changed}, now))
	})
	if err != nil {
		return nil, err
	}
	return ToAtendenteResponse(a), nil
}

func (uc *AtendenteUseCase) load(ctx context.Context, id string) (*entity.Atendente, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAtendenteNotFound
	}
	return a, nil
}

// linkableUser valida o usuário a vincular: precisa existir, ser ATENDENTE,
// estar livre e, para supervisores, pertencer à equipe.
func (uc *AtendenteUseCase) linkableUser(ctx context.Context, actor permission.Actor, userID string) (*entity.User, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.Role != entity.RoleAtendente {
		return nil, domain.NewValidationError().With("usuarioId", "somente usuários ATENDENTE podem ser vinculados")
	}
	if !permission.CanModifyRecord(actor, u.SupervisorIDValue()) {
		return nil, domain.ErrForbidden
	}
	linked, err := uc.repo.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if linked != nil {
		return nil, domain.ErrAtendenteLinked
	}
	return u, nil
}

// buildAtendente valida a entrada e monta a entidade; erros vão para v.
func buildAtendente(in dto.CreateAtendenteRequest, now time.Time, v *domain.ValidationError) *entity.Atendente {
	a := &entity.Atendente{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     normalizeEmail(in.Email),
		CPF:       onlyDigits(in.CPF),
		Phone:     onlyDigits(in.Phone),
		Cargo:     strings.TrimSpace(in.Cargo),
		Setor:     strings.TrimSpace(in.Setor),
		Portaria:  strings.TrimSpace(in.Portaria),
		Status:    strings.TrimSpace(in.Status),
		AvatarURL: strings.TrimSpace(in.AvatarURL),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	validateName(v, "atendente.nome", a.Name)
	if !validEmail(a.Email) {
		v.Add("atendente.email", "email inválido")
	}
	if len(a.CPF) != cpfLength {
		v.Add("atendente.cpf", "CPF deve ter 11 dígitos")
	}
	if a.Cargo == "" {
		v.Add("atendente.cargo", "obrigatório")
	}
	if a.Setor == "" {
		v.Add("atendente.setor", "obrigatório")
	}
	if a.Status == "" {
		a.Status = entity.AtendenteAtivo
	} else if !entity.IsValidAtendenteStatus(a.Status) {
		v.Add("atendente.status", "status inválido")
	}
	if d, ok := parseDate("atendente.dataAdmissao", in.AdmissionDate, v); ok {
		a.AdmissionDate = d
	}
	if in.BirthDate != nil && strings.TrimSpace(*in.BirthDate) != "" {
		if d, ok := parseDate("atendente.dataNascimento", *in.BirthDate, v); ok {
			a.BirthDate = &d
		}
	}
	return a
}

func nonEmpty(s string) bool { return s != "" }

// ToAtendenteResponse converte a entidade na saída da API.
func ToAtendenteResponse(a *entity.Atendente) *dto.AtendenteResponse {
	if a == nil {
		return nil
	}
	return &dto.AtendenteResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		CPF:           a.CPF,
		Phone:         a.Phone,
		Cargo:         a.Cargo,
		Setor:         a.Setor,
		Portaria:      a.Portaria,
		AdmissionDate: formatDate(a.AdmissionDate),
		BirthDate:     formatDatePtr(a.BirthDate),
		Status:        a.Status,
		AvatarURL:     a.AvatarURL,
		Notes:         a.Notes,
		UserID:        a.UserID,
		SupervisorID:  a.SupervisorID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
