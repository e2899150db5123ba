package ports

import (
	"context"

	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

// TxRepos são os repositórios atados a uma mesma transação.
type TxRepos struct {
	Users      repository.UserRepository
	Atendentes repository.AtendenteRepository
	Avaliacoes repository.AvaliacaoRepository
	Feedbacks  repository.FeedbackRepository
	Changelogs repository.ChangelogRepository
	AuditLogs  repository.AuditLogRepository
}

// TxRunner executa fn dentro de uma transação de BD: Commit se fn retornar nil,
// Rollback caso contrário.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
