package repository

import (
	"context"
	"time"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

// UserFilter filtros da listagem de usuários.
type UserFilter struct {
	Scope  Scope
	Role   string
	Active *bool
	Search string // nome ou email
	Page
}

// UserRepository define o porto de persistência para User.
// Leituras devolvem (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
}
