package repository

import (
	"context"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

// FeedbackFilter filtros da listagem de feedbacks.
type FeedbackFilter struct {
	Scope          Scope
	DestinatarioID string
	Tipo           string
	Prioridade     string
	Status         string
	Page
}

// FeedbackRepository define o porto de persistência para Feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, f *entity.Feedback) error
	GetByID(ctx context.Context, id string) (*entity.Feedback, error)
	Update(ctx context.Context, f *entity.Feedback) error
	List(ctx context.Context, f FeedbackFilter) ([]*entity.Feedback, int, error)
}
