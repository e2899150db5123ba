package repository

import (
	"context"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

// ChangelogRepository define o porto de persistência para Changelog e seus itens.
type ChangelogRepository interface {
	// Create insere o cabeçalho e os itens; use dentro de uma transação.
	Create(ctx context.Context, c *entity.Changelog) error
	GetByID(ctx context.Context, id string) (*entity.Changelog, error)
	Update(ctx context.Context, c *entity.Changelog) error
	ReplaceItems(ctx context.Context, changelogID string, items []entity.ChangelogItem) error
	List(ctx context.Context, onlyPublished bool, p Page) ([]*entity.Changelog, int, error)
}
