package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/ports"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

const (
	entityAvaliacao = "avaliacao"
	periodoLayout   = "2006-01"
	maxComentario   = 1000
)

var periodoRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// AvaliacaoUseCase casos de uso de avaliações.
type AvaliacaoUseCase struct {
	repo       repository.AvaliacaoRepository
	atendentes repository.AtendenteRepository
	tx         ports.TxRunner
	now        Clock
}

// NewAvaliacaoUseCase constrói o caso de uso.
func NewAvaliacaoUseCase(repo repository.AvaliacaoRepository, atendentes repository.AtendenteRepository, tx ports.TxRunner) *AvaliacaoUseCase {
	return &AvaliacaoUseCase{repo: repo, atendentes: atendentes, tx: tx, now: defaultClock}
}

// List lista avaliações no escopo do ator.
func (uc *AvaliacaoUseCase) List(ctx context.Context, actor permission.Actor, q dto.AvaliacaoListQuery) (*dto.ListResponse[dto.AvaliacaoResponse], error) {
	scope, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}
	if q.Periodo != "" && !periodoRe.MatchString(q.Periodo) {
		return nil, domain.NewValidationError().With("periodo", "use AAAA-MM")
	}
	f := repository.AvaliacaoFilter{
		Scope:       scope,
		AtendenteID: strings.TrimSpace(q.AtendenteID),
		AvaliadorID: strings.TrimSpace(q.AvaliadorID),
		Periodo:     q.Periodo,
		Page:        toRepoPage(&q.PageRequest),
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AvaliacaoResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAvaliacaoResponse(a))
	}
	return &dto.ListResponse[dto.AvaliacaoResponse]{Items: items, Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// GetByID devolve a avaliação para o autor ou para quem enxerga o atendente avaliado.
func (uc *AvaliacaoUseCase) GetByID(ctx context.Context, actor permission.Actor, id string) (*dto.AvaliacaoResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSeeAvaliacao(actor, a) {
		return nil, domain.ErrForbidden
	}
	return ToAvaliacaoResponse(a), nil
}

// Create registra a nota do ator para um atendente no período (uma por avaliador e período).
func (uc *AvaliacaoUseCase) Create(ctx context.Context, actor permission.Actor, in dto.CreateAvaliacaoRequest, ip string) (*dto.AvaliacaoResponse, error) {
	if !permission.For(actor.Role).CanCreate {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	in.Periodo = strings.TrimSpace(in.Periodo)
	if in.Periodo == "" {
		in.Periodo = now.Format(periodoLayout)
	}
	in.Comentario = strings.TrimSpace(in.Comentario)

	v := domain.NewValidationError()
	if strings.TrimSpace(in.AtendenteID) == "" {
		v.Add("atendenteId", "obrigatório")
	}
	validateNota(v, in.Nota)
	if !periodoRe.MatchString(in.Periodo) {
		v.Add("periodo", "use AAAA-MM")
	}
	if len([]rune(in.Comentario)) > maxComentario {
		v.Add("comentario", "máximo de 1000 caracteres")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	at, err := uc.atendentes.GetByID(ctx, strings.TrimSpace(in.AtendenteID))
	if err != nil {
		return nil, err
	}
	if at == nil {
		return nil, domain.ErrAtendenteNotFound
	}
	if at.OwnerID() == actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !permission.CanModifyRecord(actor, at.SupervisorIDValue()) {
		return nil, domain.ErrForbidden
	}
	if at.Status == entity.AtendenteInativo {
		return nil, domain.NewValidationError().With("atendenteId", "atendente inativo")
	}

	av := &entity.Avaliacao{
		ID:                  uuid.New().String(),
		AtendenteID:         at.ID,
		AvaliadorID:         actor.UserID,
		Nota:                in.Nota,
		Comentario:          in.Comentario,
		Periodo:             in.Periodo,
		CreatedAt:           now,
		UpdatedAt:           now,
		AtendenteName:       at.Name,
		AtendenteUserID:     at.UserID,
		AtendenteSupervisor: at.SupervisorID,
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Avaliacoes.Create(ctx, av); err != nil {
			return err
		}
		details := map[string]any{"atendenteId": av.AtendenteID, "nota": av.Nota, "periodo": av.Periodo}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditCreate, entityAvaliacao, av.ID, ip, details, now))
	})
	if err != nil {
		return nil, err
	}
	return ToAvaliacaoResponse(av), nil
}

// Update corrige nota ou comentário. Somente ADMIN ou o próprio avaliador.
func (uc *AvaliacaoUseCase) Update(ctx context.Context, actor permission.Actor, id string, in dto.UpdateAvaliacaoRequest, ip string) (*dto.AvaliacaoResponse, error) {
	av, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	caps := permission.For(actor.Role)
	if !caps.CanEdit || !(caps.CanViewAll || av.AvaliadorID == actor.UserID) {
		return nil, domain.ErrForbidden
	}
	v := domain.NewValidationError()
	if in.Nota != nil {
		validateNota(v, *in.Nota)
		av.Nota = *in.Nota
	}
	if in.Comentario != nil {
		c := strings.TrimSpace(*in.Comentario)
		if len([]rune(c)) > maxComentario {
			v.Add("comentario", "máximo de 1000 caracteres")
		}
		av.Comentario = c
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	now := uc.now()
	av.UpdatedAt = now
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Avaliacoes.Update(ctx, av); err != nil {
			return err
		}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditUpdate, entityAvaliacao, av.ID, ip, map[string]any{"nota": av.Nota}, now))
	})
	if err != nil {
		return nil, err
	}
	return ToAvaliacaoResponse(av), nil
}

func (uc *AvaliacaoUseCase) load(ctx context.Context, id string) (*entity.Avaliacao, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAvaliacaoNotFound
	}
	return a, nil
}

func canSeeAvaliacao(actor permission.Actor, a *entity.Avaliacao) bool {
	if actor.UserID != "" && a.AvaliadorID == actor.UserID {
		return true
	}
	return permission.CanAccessRecord(actor, deref(a.AtendenteUserID), deref(a.AtendenteSupervisor))
}

func validateNota(v *domain.ValidationError, nota int) {
	if nota < entity.NotaMin || nota > entity.NotaMax {
		v.Add("nota", "a nota deve estar entre 1 e 5")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToAvaliacaoResponse converte a entidade na saída da API.
func ToAvaliacaoResponse(a *entity.Avaliacao) *dto.AvaliacaoResponse {
	if a == nil {
		return nil
	}
	return &dto.AvaliacaoResponse{
		ID:            a.ID,
		AtendenteID:   a.AtendenteID,
		AtendenteName: a.AtendenteName,
		AvaliadorID:   a.AvaliadorID,
		AvaliadorName: a.AvaliadorName,
		Nota:          a.Nota,
		Comentario:    a.Comentario,
		Periodo:       a.Periodo,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
