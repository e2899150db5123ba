package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/ports"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

const entityFeedback = "feedback"

// FeedbackUseCase casos de uso de feedbacks.
type FeedbackUseCase struct {
	repo       repository.FeedbackRepository
	atendentes repository.AtendenteRepository
	tx         ports.TxRunner
	now        Clock
}

// NewFeedbackUseCase constrói o caso de uso.
func NewFeedbackUseCase(repo repository.FeedbackRepository, atendentes repository.AtendenteRepository, tx ports.TxRunner) *FeedbackUseCase {
	return &FeedbackUseCase{repo: repo, atendentes: atendentes, tx: tx, now: defaultClock}
}

// List lista feedbacks no escopo do ator.
func (uc *FeedbackUseCase) List(ctx context.Context, actor permission.Actor, q dto.FeedbackListQuery) (*dto.ListResponse[dto.FeedbackResponse], error) {
	scope, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	if q.Tipo != "" && !entity.IsValidFeedbackTipo(q.Tipo) {
		v.Add("tipo", "tipo inválido")
	}
	if q.Prioridade != "" && !entity.IsValidPrioridade(q.Prioridade) {
		v.Add("prioridade", "prioridade inválida")
	}
	if q.Status != "" && !entity.IsValidFeedbackStatus(q.Status) {
		v.Add("status", "status inválido")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	f := repository.FeedbackFilter{
		Scope:          scope,
		DestinatarioID: strings.TrimSpace(q.DestinatarioID),
		Tipo:           q.Tipo,
		Prioridade:     q.Prioridade,
		Status:         q.Status,
		Page:           toRepoPage(&q.PageRequest),
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FeedbackResponse, 0, len(list))
	for _, fb := range list {
		items = append(items, *ToFeedbackResponse(fb))
	}
	return &dto.ListResponse[dto.FeedbackResponse]{Items: items, Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// GetByID devolve o feedback para o remetente ou para quem enxerga o destinatário.
func (uc *FeedbackUseCase) GetByID(ctx context.Context, actor permission.Actor, id string) (*dto.FeedbackResponse, error) {
	fb, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.UserID == "" || (fb.RemetenteID != actor.UserID &&
		!permission.CanAccessRecord(actor, deref(fb.DestinatarioUserID), deref(fb.DestinatarioSupervisor))) {
		return nil, domain.ErrForbidden
	}
	return ToFeedbackResponse(fb), nil
}

// Create registra um feedback sobre um atendente da equipe do ator.
func (uc *FeedbackUseCase) Create(ctx context.Context, actor permission.Actor, in dto.CreateFeedbackRequest, ip string) (*dto.FeedbackResponse, error) {
	if !permission.For(actor.Role).CanCreate {
		return nil, domain.ErrForbidden
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Prioridade == "" {
		in.Prioridade = entity.PrioridadeMedia
	}
	v := domain.NewValidationError()
	if n := len([]rune(in.Title)); n < 3 || n > 200 {
		v.Add("titulo", "deve ter entre 3 e 200 caracteres")
	}
	if in.Content == "" {
		v.Add("conteudo", "obrigatório")
	}
	if !entity.IsValidFeedbackTipo(in.Tipo) {
		v.Add("tipo", "tipo inválido")
	}
	if !entity.IsValidPrioridade(in.Prioridade) {
		v.Add("prioridade", "prioridade inválida")
	}
	if strings.TrimSpace(in.DestinatarioID) == "" {
		v.Add("destinatarioId", "obrigatório")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	at, err := uc.atendentes.GetByID(ctx, strings.TrimSpace(in.DestinatarioID))
	if err != nil {
		return nil, err
	}
	if at == nil {
		return nil, domain.ErrAtendenteNotFound
	}
	if !permission.CanModifyRecord(actor, at.SupervisorIDValue()) {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	fb := &entity.Feedback{
		ID:                     uuid.New().String(),
		Title:                  in.Title,
		Content:                in.Content,
		Tipo:                   in.Tipo,
		Prioridade:             in.Prioridade,
		Status:                 entity.FeedbackPendente,
		RemetenteID:            actor.UserID,
		DestinatarioID:         at.ID,
		CreatedAt:              now,
		UpdatedAt:              now,
		DestinatarioName:       at.Name,
		DestinatarioUserID:     at.UserID,
		DestinatarioSupervisor: at.SupervisorID,
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Feedbacks.Create(ctx, fb); err != nil {
			return err
		}
		details := map[string]any{"destinatarioId": fb.DestinatarioID, "tipo": fb.Tipo}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditCreate, entityFeedback, fb.ID, ip, details, now))
	})
	if err != nil {
		return nil, err
	}
	return ToFeedbackResponse(fb), nil
}

// Update acompanha o feedback: status, prioridade e resposta.
// Responder um feedback pendente o move para EM_ANALISE.
func (uc *FeedbackUseCase) Update(ctx context.Context, actor permission.Actor, id string, in dto.UpdateFeedbackRequest, ip string) (*dto.FeedbackResponse, error) {
	fb, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanModifyRecord(actor, deref(fb.DestinatarioSupervisor)) {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	v := domain.NewValidationError()
	if in.Prioridade != nil {
		if !entity.IsValidPrioridade(*in.Prioridade) {
			v.Add("prioridade", "prioridade inválida")
		}
		fb.Prioridade = *in.Prioridade
	}
	if in.Resposta != nil {
		fb.Resposta = strings.TrimSpace(*in.Resposta)
		if fb.Resposta != "" {
			fb.RespondidoEm = &now
			if fb.Status == entity.FeedbackPendente {
				fb.Status = entity.FeedbackEmAnalise
			}
		} else {
			fb.RespondidoEm = nil
		}
	}
	if in.Status != nil {
		if !entity.IsValidFeedbackStatus(*in.Status) {
			v.Add("status", "status inválido")
		}
		fb.Status = *in.Status
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	fb.UpdatedAt = now
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Feedbacks.Update(ctx, fb); err != nil {
			return err
		}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditUpdate, entityFeedback, fb.ID, ip, map[string]any{"status": fb.Status}, now))
	})
	if err != nil {
		return nil, err
	}
	return ToFeedbackResponse(fb), nil
}

func (uc *FeedbackUseCase) load(ctx context.Context, id string) (*entity.Feedback, error) {
	fb, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, domain.ErrFeedbackNotFound
	}
	return fb, nil
}

// ToFeedbackResponse converte a entidade na saída da API.
func ToFeedbackResponse(f *entity.Feedback) *dto.FeedbackResponse {
	if f == nil {
		return nil
	}
	return &dto.FeedbackResponse{
		ID:               f.ID,
		Title:            f.Title,
		Content:          f.Content,
		Tipo:             f.Tipo,
		Prioridade:       f.Prioridade,
		Status:           f.Status,
		RemetenteID:      f.RemetenteID,
		RemetenteName:    f.RemetenteName,
		DestinatarioID:   f.DestinatarioID,
		DestinatarioName: f.DestinatarioName,
		Resposta:         f.Resposta,
		RespondidoEm:     f.RespondidoEm,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}
