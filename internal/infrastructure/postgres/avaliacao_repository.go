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

var _ repository.AvaliacaoRepository = (*AvaliacaoRepo)(nil)

const avaliacaoFrom = `
	FROM avaliacoes av
	JOIN atendentes a ON a.id = av.avaliado_id
	LEFT JOIN usuarios lu ON lu.id = a.usuario_id
	LEFT JOIN usuarios ud ON ud.id = av.avaliador_id`

const avaliacaoSelect = `
	SELECT av.id, av.avaliado_id, av.avaliador_id, av.nota, COALESCE(av.comentario, ''), av.periodo,
		av.created_at, av.updated_at, a.nome, COALESCE(ud.nome, ''), a.usuario_id, lu.supervisor_id` + avaliacaoFrom

// AvaliacaoRepo implementação de AvaliacaoRepository (pool ou tx).
type AvaliacaoRepo struct {
	q Querier
}

// NewAvaliacaoRepository constrói o adaptador.
func NewAvaliacaoRepository(q Querier) *AvaliacaoRepo {
	return &AvaliacaoRepo{q: q}
}

// Create persiste a avaliação. Repetir avaliador+atendente+período é conflito.
func (r *AvaliacaoRepo) Create(ctx context.Context, av *entity.Avaliacao) error {
	query := `
		INSERT INTO avaliacoes (id, avaliado_id, avaliador_id, nota, comentario, periodo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		av.ID, av.AtendenteID, av.AvaliadorID, av.Nota, av.Comentario, av.Periodo, av.CreatedAt, av.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAvaliacao
		}
		return fmt.Errorf("insert avaliacao: %w", err)
	}
	return nil
}

// GetByID busca a avaliação com nomes e vínculo de supervisão do atendente.
func (r *AvaliacaoRepo) GetByID(ctx context.Context, id string) (*entity.Avaliacao, error) {
	av, err := scanAvaliacao(r.q.QueryRow(ctx, avaliacaoSelect+` WHERE av.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get avaliacao: %w", err)
	}
	return av, nil
}

// Update grava nota e comentário.
func (r *AvaliacaoRepo) Update(ctx context.Context, av *entity.Avaliacao) error {
	tag, err := r.q.Exec(ctx, `UPDATE avaliacoes SET nota = $2, comentario = $3, updated_at = $4 WHERE id = $1`,
		av.ID, av.Nota, av.Comentario, av.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update avaliacao: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAvaliacaoNotFound
	}
	return nil
}

// List lista avaliações, mais recentes primeiro.
func (r *AvaliacaoRepo) List(ctx context.Context, f repository.AvaliacaoFilter) ([]*entity.Avaliacao, int, error) {
	var w whereBuilder
	switch {
	case f.Scope.SupervisorID != "":
		w.add("(lu.supervisor_id = $%[1]d OR av.avaliador_id = $%[1]d)", f.Scope.SupervisorID)
	case f.Scope.UserID != "":
		w.add("a.usuario_id = $%d", f.Scope.UserID)
	}
	if f.AtendenteID != "" {
		w.add("av.avaliado_id = $%d", f.AtendenteID)
	}
	if f.AvaliadorID != "" {
		w.add("av.avaliador_id = $%d", f.AvaliadorID)
	}
	if f.Periodo != "" {
		w.add("av.periodo = $%d", f.Periodo)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+avaliacaoFrom+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count avaliacoes: %w", err)
	}
	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, avaliacaoSelect+w.String()+` ORDER BY av.created_at DESC, av.id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list avaliacoes: %w", err)
	}
	defer rows.Close()
	list, err := collectAvaliacoes(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func collectAvaliacoes(rows pgx.Rows) ([]*entity.Avaliacao, error) {
	list := make([]*entity.Avaliacao, 0)
	for rows.Next() {
		av, err := scanAvaliacao(rows)
		if err != nil {
			return nil, fmt.Errorf("scan avaliacao: %w", err)
		}
		list = append(list, av)
	}
	return list, rows.Err()
}

func scanAvaliacao(row pgx.Row) (*entity.Avaliacao, error) {
	var av entity.Avaliacao
	err := row.Scan(
		&av.ID, &av.AtendenteID, &av.AvaliadorID, &av.Nota, &av.Comentario, &av.Periodo,
		&av.CreatedAt, &av.UpdatedAt, &av.AtendenteName, &av.AvaliadorName, &av.AtendenteUserID, &av.AtendenteSupervisor,
	)
	if err != nil {
		return nil, err
	}
	return &av, nil
}
