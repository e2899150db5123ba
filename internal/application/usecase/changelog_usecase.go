package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/ports"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

const entityChangelog = "changelog"

// ChangelogUseCase mantém as notas de versão. Somente ADMIN escreve e vê rascunhos.
type ChangelogUseCase struct {
	repo repository.ChangelogRepository
	tx   ports.TxRunner
	now  Clock
}

// NewChangelogUseCase constrói o caso de uso.
func NewChangelogUseCase(repo repository.ChangelogRepository, tx ports.TxRunner) *ChangelogUseCase {
	return &ChangelogUseCase{repo: repo, tx: tx, now: defaultClock}
}

// List lista versões, mais recentes primeiro.
func (uc *ChangelogUseCase) List(ctx context.Context, actor permission.Actor, p dto.PageRequest) (*dto.ListResponse[dto.ChangelogResponse], error) {
	onlyPublished := actor.Role != entity.RoleAdmin
	list, total, err := uc.repo.List(ctx, onlyPublished, toRepoPage(&p))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChangelogResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToChangelogResponse(c))
	}
	return &dto.ListResponse[dto.ChangelogResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

// GetByID devolve a versão; rascunhos só existem para ADMIN.
func (uc *ChangelogUseCase) GetByID(ctx context.Context, actor permission.Actor, id string) (*dto.ChangelogResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || (!c.Published && actor.Role != entity.RoleAdmin) {
		return nil, domain.ErrChangelogNotFound
	}
	return ToChangelogResponse(c), nil
}

// Create grava a versão e seus itens na mesma transação.
func (uc *ChangelogUseCase) Create(ctx context.Context, actor permission.Actor, in dto.CreateChangelogRequest, ip string) (*dto.ChangelogResponse, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	c := &entity.Changelog{
		ID:          uuid.New().String(),
		Version:     strings.TrimPrefix(strings.TrimSpace(in.Version), "v"),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Tipo:        in.Tipo,
		ReleaseDate: now,
		Published:   in.Published,
		AuthorID:    actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	v := domain.NewValidationError()
	if !validVersion(c.Version) {
		v.Add("versao", "use o formato MAJOR.MINOR.PATCH")
	}
	if c.Title == "" {
		v.Add("titulo", "obrigatório")
	}
	if !entity.IsValidReleaseTipo(c.Tipo) {
		v.Add("tipo", "tipo inválido")
	}
	if strings.TrimSpace(in.ReleaseDate) != "" {
		if d, ok := parseDate("dataLancamento", in.ReleaseDate, v); ok {
			c.ReleaseDate = d
		}
	}
	c.Items = buildChangelogItems(c.ID, in.Items, v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Changelogs.Create(ctx, c); err != nil {
			return err
		}
		details := map[string]any{"versao": c.Version, "itens": len(c.Items)}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditCreate, entityChangelog, c.ID, ip, details, now))
	})
	if err != nil {
		return nil, err
	}
	return ToChangelogResponse(c), nil
}

// Update altera a versão; Items informado substitui todos os itens.
func (uc *ChangelogUseCase) Update(ctx context.Context, actor permission.Actor, id string, in dto.UpdateChangelogRequest, ip string) (*dto.ChangelogResponse, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrChangelogNotFound
	}
	v := domain.NewValidationError()
	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
		if c.Title == "" {
			v.Add("titulo", "obrigatório")
		}
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Tipo != nil {
		if !entity.IsValidReleaseTipo(*in.Tipo) {
			v.Add("tipo", "tipo inválido")
		}
		c.Tipo = *in.Tipo
	}
	if in.ReleaseDate != nil {
		if d, ok := parseDate("dataLancamento", *in.ReleaseDate, v); ok {
			c.ReleaseDate = d
		}
	}
	if in.Published != nil {
		c.Published = *in.Published
	}
	replaceItems := in.Items != nil
	if replaceItems {
		c.Items = buildChangelogItems(c.ID, *in.Items, v)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	now := uc.now()
	c.UpdatedAt = now
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Changelogs.Update(ctx, c); err != nil {
			return err
		}
		if replaceItems {
			if err := r.Changelogs.ReplaceItems(ctx, c.ID, c.Items); err != nil {
				return err
			}
		}
		details := map[string]any{"versao": c.Version, "publicado": c.Published}
		return r.AuditLogs.Create(ctx, newAuditLog(actor, entity.AuditUpdate, entityChangelog, c.ID, ip, details, now))
	})
	if err != nil {
		return nil, err
	}
	return ToChangelogResponse(c), nil
}

func buildChangelogItems(changelogID string, in []dto.ChangelogItemInput, v *domain.ValidationError) []entity.ChangelogItem {
	items := make([]entity.ChangelogItem, 0, len(in))
	for i, it := range in {
		desc := strings.TrimSpace(it.Description)
		if !entity.IsValidItemCategoria(it.Categoria) {
			v.Add(fmt.Sprintf("itens[%d].categoria", i), "categoria inválida")
		}
		if desc == "" {
			v.Add(fmt.Sprintf("itens[%d].descricao", i), "obrigatório")
		}
		items = append(items, entity.ChangelogItem{
			ID:          uuid.New().String(),
			ChangelogID: changelogID,
			Categoria:   it.Categoria,
			Description: desc,
			Ordem:       i + 1,
		})
	}
	return items
}

// ToChangelogResponse converte a entidade na saída da API.
func ToChangelogResponse(c *entity.Changelog) *dto.ChangelogResponse {
	if c == nil {
		return nil
	}
	items := make([]dto.ChangelogItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.ChangelogItemResponse{ID: it.ID, Categoria: it.Categoria, Description: it.Description, Ordem: it.Ordem})
	}
	return &dto.ChangelogResponse{
		ID:          c.ID,
		Version:     c.Version,
		Title:       c.Title,
		Description: c.Description,
		Tipo:        c.Tipo,
		ReleaseDate: formatDate(c.ReleaseDate),
		Published:   c.Published,
		AuthorID:    c.AuthorID,
		Items:       items,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// validVersion aceita apenas MAJOR.MINOR.PATCH completo, com pré-release opcional.
// Formas abreviadas ("1.2") e metadados de build ("+abc") são recusados.
func validVersion(v string) bool {
	sv := "v" + v
	return semver.IsValid(sv) && semver.Canonical(sv) == sv
}
