package repository

import (
	"context"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

// AvaliacaoFilter filtros da listagem de avaliações.
type AvaliacaoFilter struct {
	Scope       Scope
	AtendenteID string
	AvaliadorID string
	Periodo     string
	Page
}

// AvaliacaoRepository define o porto de persistência para Avaliacao.
type AvaliacaoRepository interface {
	Create(ctx context.Context, a *entity.Avaliacao) error
	GetByID(ctx context.Context, id string) (*entity.Avaliacao, error)
	Update(ctx context.Context, a *entity.Avaliacao) error
	List(ctx context.Context, f AvaliacaoFilter) ([]*entity.Avaliacao, int, error)
}
