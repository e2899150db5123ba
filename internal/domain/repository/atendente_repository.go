package repository

import (
	"context"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

// AtendenteFilter filtros da listagem de atendentes.
type AtendenteFilter struct {
	Scope  Scope
	Status string
	Cargo  string
	Setor  string
	Search string // nome, email ou CPF
	Page
}

// AtendenteRepository define o porto de persistência para Atendente.
// Leituras preenchem SupervisorID a partir do usuário vinculado.
type AtendenteRepository interface {
	Create(ctx context.Context, a *entity.Atendente) error
	GetByID(ctx context.Context, id string) (*entity.Atendente, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Atendente, error)
	Update(ctx context.Context, a *entity.Atendente) error
	LinkUser(ctx context.Context, atendenteID, userID string) error
	List(ctx context.Context, f AtendenteFilter) ([]*entity.Atendente, int, error)
}
