package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/metrics"
)

// MetricsFilter recorte das consultas de métricas.
type MetricsFilter struct {
	Scope Scope
	Start time.Time
	End   time.Time
	Cargo string
	Setor string
}

// MonthlyPoint avaliações de um mês (YYYY-MM) de um atendente.
type MonthlyPoint struct {
	Periodo string
	Total   int
	Media   decimal.Decimal
}

// DashboardCounts contadores do painel inicial.
type DashboardCounts struct {
	Atendentes         int
	AtendentesAtivos   int
	Avaliacoes         int
	FeedbacksPendentes int
	Usuarios           int
}

// MetricsRepository consultas de leitura para ranking, resumo e painel.
// As implementações não alteram dados.
type MetricsRepository interface {
	// AtendenteRows devolve uma linha por atendente não INATIVO do escopo,
	// inclusive os que não têm avaliações na janela.
	AtendenteRows(ctx context.Context, f MetricsFilter) ([]metrics.Row, error)
	// RatingDistribution conta avaliações por nota na janela.
	RatingDistribution(ctx context.Context, f MetricsFilter) (map[int]int, error)
	// AtendenteRow devolve a linha de um único atendente (nil se não existir).
	AtendenteRow(ctx context.Context, atendenteID string, start, end time.Time) (*metrics.Row, error)
	MonthlyEvolution(ctx context.Context, atendenteID string, start, end time.Time) ([]MonthlyPoint, error)
	RecentAvaliacoes(ctx context.Context, atendenteID string, start, end time.Time, limit int) ([]*entity.Avaliacao, error)
	DashboardCounts(ctx context.Context, scope Scope, since time.Time) (DashboardCounts, error)
}
