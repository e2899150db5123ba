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

var _ repository.AtendenteRepository = (*AtendenteRepo)(nil)

// O supervisor do atendente é o supervisor do usuário vinculado.
const atendenteSelect = `
	SELECT a.id, a.nome, a.email, a.cpf, COALESCE(a.telefone, ''), a.cargo, a.setor,
		COALESCE(a.portaria, ''), a.data_admissao, a.data_nascimento, a.status,
		COALESCE(a.avatar_url, ''), COALESCE(a.observacoes, ''), a.usuario_id, lu.supervisor_id,
		a.created_at, a.updated_at
	FROM atendentes a
	LEFT JOIN usuarios lu ON lu.id = a.usuario_id`

var atendenteUnique = map[string]error{
	"cpf":     domain.ErrCPFAlreadyExists,
	"email":   domain.ErrEmailAlreadyExists,
	"usuario": domain.ErrAtendenteLinked,
}

// AtendenteRepo implementação de AtendenteRepository (pool ou tx).
type AtendenteRepo struct {
	q Querier
}

// NewAtendenteRepository constrói o adaptador.
func NewAtendenteRepository(q Querier) *AtendenteRepo {
	return &AtendenteRepo{q: q}
}

// Create persiste um novo atendente.
func (r *AtendenteRepo) Create(ctx context.Context, a *entity.Atendente) error {
	query := `
		INSERT INTO atendentes (id, nome, email, cpf, telefone, cargo, setor, portaria, data_admissao,
			data_nascimento, status, avatar_url, observacoes, usuario_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Email, a.CPF, a.Phone, a.Cargo, a.Setor, a.Portaria, a.AdmissionDate,
		a.BirthDate, a.Status, a.AvatarURL, a.Notes, a.UserID, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if dup := uniqueViolation(err, atendenteUnique, domain.ErrDuplicate); dup != nil {
			return dup
		}
		return fmt.Errorf("insert atendente: %w", err)
	}
	return nil
}

// GetByID busca um atendente por ID.
func (r *AtendenteRepo) GetByID(ctx context.Context, id string) (*entity.Atendente, error) {
	return r.getOne(ctx, atendenteSelect+` WHERE a.id = $1`, id)
}

// GetByUserID busca o atendente vinculado ao usuário.
func (r *AtendenteRepo) GetByUserID(ctx context.Context, userID string) (*entity.Atendente, error) {
	return r.getOne(ctx, atendenteSelect+` WHERE a.usuario_id = $1`, userID)
}

func (r *AtendenteRepo) getOne(ctx context.Context, query string, arg any) (*entity.Atendente, error) {
	a, err := scanAtendente(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get atendente: %w", err)
	}
	return a, nil
}

// Update grava os dados cadastrais (o vínculo de usuário muda só por LinkUser).
func (r *AtendenteRepo) Update(ctx context.Context, a *entity.Atendente) error {
	query := `
		UPDATE atendentes
		SET nome = $2, email = $3, cpf = $4, telefone = $5, cargo = $6, setor = $7, portaria = $8,
			data_admissao = $9, data_nascimento = $10, status = $11, avatar_url = $12, observacoes = $13,
			updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Email, a.CPF, a.Phone, a.Cargo, a.Setor, a.Portaria,
		a.AdmissionDate, a.BirthDate, a.Status, a.AvatarURL, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		if dup := uniqueViolation(err, atendenteUnique, domain.ErrDuplicate); dup != nil {
			return dup
		}
		return fmt.Errorf("update atendente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAtendenteNotFound
	}
	return nil
}

// LinkUser vincula o atendente ao usuário se ainda estiver livre.
func (r *AtendenteRepo) LinkUser(ctx context.Context, atendenteID, userID string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE atendentes SET usuario_id = $2, updated_at = NOW()
		WHERE id = $1 AND (usuario_id IS NULL OR usuario_id = $2)`, atendenteID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAtendenteLinked
		}
		return fmt.Errorf("link atendente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAtendenteLinked
	}
	return nil
}

// List lista atendentes por nome, com total para paginação.
func (r *AtendenteRepo) List(ctx context.Context, f repository.AtendenteFilter) ([]*entity.Atendente, int, error) {
	var w whereBuilder
	applyAtendenteScope(&w, f.Scope)
	if f.Status != "" {
		w.add("a.status = $%d", f.Status)
	}
	if f.Cargo != "" {
		w.add("a.cargo = $%d", f.Cargo)
	}
	if f.Setor != "" {
		w.add("a.setor = $%d", f.Setor)
	}
	if f.Search != "" {
		w.add("(a.nome ILIKE $%[1]d OR a.email ILIKE $%[1]d OR a.cpf ILIKE $%[1]d)", likePattern(f.Search))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM atendentes a LEFT JOIN usuarios lu ON lu.id = a.usuario_id` + w.String()
	if err := r.q.QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count atendentes: %w", err)
	}
	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, atendenteSelect+w.String()+` ORDER BY a.nome, a.id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list atendentes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Atendente, 0)
	for rows.Next() {
		a, err := scanAtendente(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan atendente: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// applyAtendenteScope restringe consultas que têm a (atendentes) e lu (usuário vinculado).
func applyAtendenteScope(w *whereBuilder, s repository.Scope) {
	switch {
	case s.SupervisorID != "":
		w.add("lu.supervisor_id = $%d", s.SupervisorID)
	case s.UserID != "":
		w.add("a.usuario_id = $%d", s.UserID)
	}
}

func scanAtendente(row pgx.Row) (*entity.Atendente, error) {
	var a entity.Atendente
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.CPF, &a.Phone, &a.Cargo, &a.Setor,
		&a.Portaria, &a.AdmissionDate, &a.BirthDate, &a.Status,
		&a.AvatarURL, &a.Notes, &a.UserID, &a.SupervisorID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
