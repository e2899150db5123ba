package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

const feedbackFrom = `
	FROM feedbacks f
	JOIN atendentes a ON a.id = f.destinatario_id
	LEFT JOIN usuarios lu ON lu.id = a.usuario_id
	LEFT JOIN usuarios ur ON ur.id = f.remetente_id`

const feedbackSelect = `
	SELECT f.id, f.titulo, f.conteudo, f.tipo, f.prioridade, f.status, f.remetente_id, f.destinatario_id,
		COALESCE(f.resposta, ''), f.respondido_em, f.created_at, f.updated_at,
		COALESCE(ur.nome, ''), a.nome, a.usuario_id, lu.supervisor_id` + feedbackFrom

// FeedbackRepo implementação de FeedbackRepository (pool ou tx).
type FeedbackRepo struct {
	q Querier
}

// NewFeedbackRepository constrói o adaptador.
func NewFeedbackRepository(q Querier) *FeedbackRepo {
	return &FeedbackRepo{q: q}
}

// Create persiste um novo feedback.
func (r *FeedbackRepo) Create(ctx context.Context, fb *entity.Feedback) error {
	query := `
		INSERT INTO feedbacks (id, titulo, conteudo, tipo, prioridade, status, remetente_id, destinatario_id,
			resposta, respondido_em, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		fb.ID, fb.Title, fb.Content, fb.Tipo, fb.Prioridade, fb.Status, fb.RemetenteID, fb.DestinatarioID,
		fb.Resposta, fb.RespondidoEm, fb.CreatedAt, fb.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// GetByID busca o feedback com nomes e vínculo de supervisão do destinatário.
func (r *FeedbackRepo) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	fb, err := scanFeedback(r.q.QueryRow(ctx, feedbackSelect+` WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return fb, nil
}

// Update grava status, prioridade e resposta.
func (r *FeedbackRepo) Update(ctx context.Context, fb *entity.Feedback) error {
	query := `
		UPDATE feedbacks
		SET status = $2, prioridade = $3, resposta = $4, respondido_em = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, fb.ID, fb.Status, fb.Prioridade, fb.Resposta, fb.RespondidoEm, fb.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}

// List lista feedbacks, mais recentes primeiro.
func (r *FeedbackRepo) List(ctx context.Context, f repository.FeedbackFilter) ([]*entity.Feedback, int, error) {
	var w whereBuilder
	applyFeedbackScope(&w, f.Scope)
	if f.DestinatarioID != "" {
		w.add("f.destinatario_id = $%d", f.DestinatarioID)
	}
	if f.Tipo != "" {
		w.add("f.tipo = $%d", f.Tipo)
	}
	if f.Prioridade != "" {
		w.add("f.prioridade = $%d", f.Prioridade)
	}
	if f.Status != "" {
		w.add("f.status = $%d", f.Status)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+feedbackFrom+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feedbacks: %w", err)
	}
	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, feedbackSelect+w.String()+` ORDER BY f.created_at DESC, f.id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedbacks: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Feedback, 0)
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan feedback: %w", err)
		}
		list = append(list, fb)
	}
	return list, total, rows.Err()
}

// applyFeedbackScope restringe ao time do supervisor (ou ao que ele enviou) e,
// para o atendente, ao que foi destinado a ele.
func applyFeedbackScope(w *whereBuilder, s repository.Scope) {
	switch {
	case s.SupervisorID != "":
		w.add("(lu.supervisor_id = $%[1]d OR f.remetente_id = $%[1]d)", s.SupervisorID)
	case s.UserID != "":
		w.add("a.usuario_id = $%d", s.UserID)
	}
}

func scanFeedback(row pgx.Row) (*entity.Feedback, error) {
	var fb entity.Feedback
	err := row.Scan(
		&fb.ID, &fb.Title, &fb.Content, &fb.Tipo, &fb.Prioridade, &fb.Status, &fb.RemetenteID, &fb.DestinatarioID,
		&fb.Resposta, &fb.RespondidoEm, &fb.CreatedAt, &fb.UpdatedAt,
		&fb.RemetenteName, &fb.DestinatarioName, &fb.DestinatarioUserID, &fb.DestinatarioSupervisor,
	)
	if err != nil {
		return nil, err
	}
	return &fb, nil
}
