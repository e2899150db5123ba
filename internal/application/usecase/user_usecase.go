package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/ports"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

// MinPasswordLength é o tamanho mínimo de senha aceito.
const MinPasswordLength = 6

const entityUsuario = "usuario"

// UserUseCase aplica as regras de negócio de usuários: criação com vínculo
// opcional de atendente, edição, ativação/desativação e listagem por escopo.
type UserUseCase struct {
	users      repository.UserRepository
	atendentes repository.AtendenteRepository
	tx         ports.TxRunner
	now        Clock
	hashCost   int
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(users repository.UserRepository, atendentes repository.AtendenteRepository, tx ports.TxRunner) *UserUseCase {
	return &UserUseCase{users: users, atendentes: atendentes, tx: tx, now: defaultClock, hashCost: bcrypt.DefaultCost}
}

// Permissions devolve as capacidades do perfil do ator.
func (uc *UserUseCase) Permissions(actor permission.Actor) permission.Capabilities {
	return permission.For(actor.Role)
}

// GetByID devolve o usuário se o ator puder vê-lo.
func (uc *UserUseCase) GetByID(ctx context.Context, actor permission.Actor, id string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !permission.CanAccessRecord(actor, u.ID, u.SupervisorIDValue()) {
		return nil, domain.ErrForbidden
	}
	resp := ToUserResponse(u)
	if a, err := uc.atendentes.GetByUserID(ctx, u.ID); err != nil {
		return nil, err
	} else if a != nil {
		resp.AtendenteID = a.ID
	}
	return resp, nil
}

// List lista usuários dentro do escopo do ator.
func (uc *UserUseCase) List(ctx context.Context, actor permission.Actor, q dto.UserListQuery) (*dto.ListResponse[dto.UserResponse], error) {
	caps := permission.For(actor.Role)
	if !caps.CanViewAll && !caps.CanViewTeam {
		return nil, domain.ErrForbidden
	}
	scope, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}
	f := repository.UserFilter{Scope: scope, Search: strings.TrimSpace(q.Search)}
	v := domain.NewValidationError()
	if q.Role != "" {
		if !entity.IsValidRole(q.Role) {
			v.Add("tipoUsuario", "perfil inválido")
		}
		f.Role = q.Role
	}
	switch q.Active {
	case "":
	case "true":
		f.Active = boolPtr(true)
	case "false":
		f.Active = boolPtr(false)
	default:
		v.Add("ativo", "use true ou false")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	f.Page = toRepoPage(&q.PageRequest)

	list, total, err := uc.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.ListResponse[dto.UserResponse]{Items: items, Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// Create cria um usuário. Com CriarAtendente ou AtendenteID o vínculo com o
// atendente e a auditoria são gravados na mesma transação do usuário.
func (uc *UserUseCase) Create(ctx context.Context, actor permission.Actor, in dto.CreateUserRequest, ip string) (*dto.UserResponse, error) {
	if !permission.For(actor.Role).CanCreate {
		return nil, domain.ErrForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.AtendenteID = strings.TrimSpace(in.AtendenteID)

	v := domain.NewValidationError()
	validateName(v, "nome", in.Name)
	if !validEmail(in.Email) {
		v.Add("email", "email inválido")
	}
	if len(in.Password) < MinPasswordLength {
		v.Add("senha", "a senha deve ter ao menos 6 caracteres")
	}
	if !entity.IsValidRole(in.Role) {
		v.Add("tipoUsuario", "perfil inválido")
	}
	if in.CriarAtendente && in.AtendenteID != "" {
		v.Add("atendenteId", "informe criarAtendente ou atendenteId, não ambos")
	}
	if (in.CriarAtendente || in.AtendenteID != "") && in.Role != entity.RoleAtendente {
		v.Add("tipoUsuario", "somente usuários ATENDENTE podem ser vinculados a um atendente")
	}
	now := uc.now()
	var atendente *entity.Atendente
	if in.CriarAtendente {
		req := dto.CreateAtendenteRequest{Name: in.Name, Email: in.Email, AdmissionDate: formatDate(now)}
		if in.Atendente != nil {
			req = *in.Atendente
			if strings.TrimSpace(req.Name) == "" {
				req.Name = in.Name
			}
			if strings.TrimSpace(req.Email) == "" {
				req.Email = in.Email
			}
			if strings.TrimSpace(req.AdmissionDate) == "" {
				req.AdmissionDate = formatDate(now)
			}
		}
		atendente = buildAtendente(req, now, v)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if !permission.CanManageRole(actor.Role, in.Role) {
		return nil, domain.ErrRoleNotManageable
	}
	supervisorID, err := uc.resolveSupervisor(ctx, actor, in.SupervisorID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		SupervisorID: supervisorID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var linkedID string
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		switch {
		case atendente != nil:
			atendente.UserID = &user.ID
			if err := r.Atendentes.Create(ctx, atendente); err != nil {
				return err
			}
			linkedID = atendente.ID
		case in.AtendenteID != "":
			a, err := r.Atendentes.GetByID(ctx, in.AtendenteID)
			if err != nil {
				return err
			}
			if a == nil {
				return domain.ErrAtendenteNotFound
			}
			if a.UserID != nil && *a.UserID != user.ID {
				return domain.ErrAtendenteLinked
			}
			if err := r.Atendentes.LinkUser(ctx, a.ID, user.ID); err != nil {
				return err
			}
			linkedID = a.ID
		}
		details := map[string]any{"email": user.Email, "tipoUsuario": user.Role}
		if linkedID != "" {
			details["atendenteId"] = linkedID
		}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditCreate, entityUsuario, user.ID, ip, details, now))
	})
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	resp.AtendenteID = linkedID
	return resp, nil
}

// Update altera um usuário. O próprio usuário pode trocar apenas nome e senha.
func (uc *UserUseCase) Update(ctx context.Context, actor permission.Actor, id string, in dto.UpdateUserRequest, ip string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	self := actor.UserID != "" && actor.UserID == u.ID
	privileged := in.Role != nil || in.Email != nil || in.SupervisorID != nil
	if !self || privileged {
		if !permission.CanModifyRecord(actor, u.SupervisorIDValue()) {
			return nil, domain.ErrForbidden
		}
		if !permission.CanManageRole(actor.Role, u.Role) {
			return nil, domain.ErrRoleNotManageable
		}
	}

	v := domain.NewValidationError()
	changed := []string{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		validateName(v, "nome", name)
		u.Name = name
		changed = append(changed, "nome")
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			v.Add("email", "email inválido")
		}
		u.Email = email
		changed = append(changed, "email")
	}
	if in.Password != nil && len(*in.Password) < MinPasswordLength {
		v.Add("senha", "a senha deve ter ao menos 6 caracteres")
	}
	if in.Role != nil && !entity.IsValidRole(*in.Role) {
		v.Add("tipoUsuario", "perfil inválido")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if in.Role != nil && *in.Role != u.Role {
		if !permission.CanManageRole(actor.Role, *in.Role) {
			return nil, domain.ErrRoleNotManageable
		}
		u.Role = *in.Role
		changed = append(changed, "tipoUsuario")
	}
	if in.SupervisorID != nil {
		sup, err := uc.resolveSupervisor(ctx, actor, in.SupervisorID)
		if err != nil {
			return nil, err
		}
		if sup != nil && *sup == u.ID {
			return nil, domain.NewValidationError().With("supervisorId", "um usuário não pode supervisionar a si mesmo")
		}
		u.SupervisorID = sup
		changed = append(changed, "supervisorId")
	}
	if in.Email != nil {
		other, err := uc.users.GetByEmail(ctx, u.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != u.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.hashCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
		changed = append(changed, "senha")
	}
	now := uc.now()
	u.UpdatedAt = now

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditUpdate, entityUsuario, u.ID, ip, map[string]any{"campos": changed}, now))
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// SetStatus ativa ou desativa um usuário. Ninguém desativa a si mesmo.
func (uc *UserUseCase) SetStatus(ctx context.Context, actor permission.Actor, id string, active bool, ip string) (*dto.UserResponse, error) {
	if !permission.For(actor.Role).CanDeactivate {
		return nil, domain.ErrForbidden
	}
	if !active && actor.UserID == id {
		return nil, domain.ErrSelfDeactivation
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !permission.CanModifyRecord(actor, u.SupervisorIDValue()) {
		return nil, domain.ErrForbidden
	}
	if !permission.CanManageRole(actor.Role, u.Role) {
		return nil, domain.ErrRoleNotManageable
	}
	now := uc.now()
	action := entity.AuditDeactivate
	if active {
		action = entity.AuditActivate
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Users.SetActive(ctx, u.ID, active, now); err != nil {
			return err
		}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, action, entityUsuario, u.ID, ip, nil, now))
	})
	if err != nil {
		return nil, err
	}
	u.Active = active
	u.UpdatedAt = now
	return ToUserResponse(u), nil
}

// resolveSupervisor decide o supervisor de um usuário criado/editado pelo ator.
// SUPERVISOR só atribui a si mesmo; ADMIN escolhe qualquer SUPERVISOR ou ADMIN ativo.
func (uc *UserUseCase) resolveSupervisor(ctx context.Context, actor permission.Actor, requested *string) (*string, error) {
	req := ""
	if requested != nil {
		req = strings.TrimSpace(*requested)
	}
	if actor.Role == entity.RoleSupervisor {
		if req != "" && req != actor.UserID {
			return nil, domain.ErrForbidden
		}
		id := actor.UserID
		return &id, nil
	}
	if req == "" {
		return nil, nil
	}
	sup, err := uc.users.GetByID(ctx, req)
	if err != nil {
		return nil, err
	}
	if sup == nil || !sup.Active || (sup.Role != entity.RoleSupervisor && sup.Role != entity.RoleAdmin) {
		return nil, domain.NewValidationError().With("supervisorId", "supervisor inexistente ou inativo")
	}
	return &sup.ID, nil
}

func validateName(v *domain.ValidationError, field, name string) {
	n := len([]rune(name))
	if n < 2 || n > 100 {
		v.Add(field, "deve ter entre 2 e 100 caracteres")
	}
}

func boolPtr(b bool) *bool { return &b }

// ToUserResponse converte a entidade na saída da API (sem o hash da senha).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		SupervisorID: u.SupervisorID,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
