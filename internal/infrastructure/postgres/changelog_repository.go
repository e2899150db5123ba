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

var _ repository.ChangelogRepository = (*ChangelogRepo)(nil)

const changelogColumns = `c.id, c.versao, c.titulo, COALESCE(c.descricao, ''), c.tipo, c.data_lancamento, c.publicado,
	c.autor_id, c.created_at, c.updated_at`

// ChangelogRepo implementação de ChangelogRepository (pool ou tx).
type ChangelogRepo struct {
	q Querier
}

// NewChangelogRepository constrói o adaptador.
func NewChangelogRepository(q Querier) *ChangelogRepo {
	return &ChangelogRepo{q: q}
}

// Create insere a versão e os itens.
func (r *ChangelogRepo) Create(ctx context.Context, c *entity.Changelog) error {
	query := `
		INSERT INTO changelogs (id, versao, titulo, descricao, tipo, data_lancamento, publicado, autor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Version, c.Title, c.Description, c.Tipo, c.ReleaseDate, c.Published, c.AuthorID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionExists
		}
		return fmt.Errorf("insert changelog: %w", err)
	}
	return r.insertItems(ctx, c.ID, c.Items)
}

// GetByID busca a versão com os itens em ordem.
func (r *ChangelogRepo) GetByID(ctx context.Context, id string) (*entity.Changelog, error) {
	c, err := scanChangelog(r.q.QueryRow(ctx, `SELECT `+changelogColumns+` FROM changelogs c WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get changelog: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Changelog{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// Update grava o cabeçalho da versão.
func (r *ChangelogRepo) Update(ctx context.Context, c *entity.Changelog) error {
	query := `
		UPDATE changelogs
		SET titulo = $2, descricao = $3, tipo = $4, data_lancamento = $5, publicado = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Title, c.Description, c.Tipo, c.ReleaseDate, c.Published, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update changelog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChangelogNotFound
	}
	return nil
}

// ReplaceItems apaga os itens da versão e insere os novos.
func (r *ChangelogRepo) ReplaceItems(ctx context.Context, changelogID string, items []entity.ChangelogItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM changelog_itens WHERE changelog_id = $1`, changelogID); err != nil {
		return fmt.Errorf("delete changelog itens: %w", err)
	}
	return r.insertItems(ctx, changelogID, items)
}

// List lista versões por data de lançamento decrescente.
func (r *ChangelogRepo) List(ctx context.Context, onlyPublished bool, p repository.Page) ([]*entity.Changelog, int, error) {
	var w whereBuilder
	if onlyPublished {
		w.raw("c.publicado")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM changelogs c`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count changelogs: %w", err)
	}
	limit, args := w.page(p.Limit, p.Offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+changelogColumns+` FROM changelogs c`+w.String()+` ORDER BY c.data_lancamento DESC, c.created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list changelogs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Changelog, 0)
	for rows.Next() {
		c, err := scanChangelog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan changelog: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()
	if err := r.loadItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ChangelogRepo) insertItems(ctx context.Context, changelogID string, items []entity.ChangelogItem) error {
	query := `
		INSERT INTO changelog_itens (id, changelog_id, categoria, descricao, ordem)
		VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query, it.ID, changelogID, it.Categoria, it.Description, it.Ordem); err != nil {
			return fmt.Errorf("insert changelog item: %w", err)
		}
	}
	return nil
}

// loadItems preenche Items de todas as versões com uma única consulta.
func (r *ChangelogRepo) loadItems(ctx context.Context, list []*entity.Changelog) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Changelog, len(list))
	ids := make([]string, 0, len(list))
	for _, c := range list {
		c.Items = []entity.ChangelogItem{}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, changelog_id, categoria, descricao, ordem
		FROM changelog_itens WHERE changelog_id = ANY($1)
		ORDER BY changelog_id, ordem`, ids)
	if err != nil {
		return fmt.Errorf("list changelog itens: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ChangelogItem
		if err := rows.Scan(&it.ID, &it.ChangelogID, &it.Categoria, &it.Description, &it.Ordem); err != nil {
			return fmt.Errorf("scan changelog item: %w", err)
		}
		if c := byID[it.ChangelogID]; c != nil {
			c.Items = append(c.Items, it)
		}
	}
	return rows.Err()
}

func scanChangelog(row pgx.Row) (*entity.Changelog, error) {
	var c entity.Changelog
	err := row.Scan(&c.ID, &c.Version, &c.Title, &c.Description, &c.Tipo, &c.ReleaseDate, &c.Published,
		&c.AuthorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
