package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/metrics"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo consultas somente leitura de ranking, resumo e painel.
type MetricsRepo struct {
	q Querier
}

// NewMetricsRepository constrói o adaptador de métricas.
func NewMetricsRepository(q Querier) *MetricsRepo {
	return &MetricsRepo{q: q}
}

// rowSelect agrega as avaliações da janela ($1, $2) por atendente.
// Atendentes sem avaliação aparecem com contagens zeradas.
const rowSelect = `
	SELECT
	    a.id,
	    a.nome,
	    COALESCE(a.cargo, ''),
	    COALESCE(a.setor, ''),
	    COALESCE(a.avatar_url, ''),
	    COUNT(av.id)                                   AS total,
	    COALESCE(SUM(av.nota), 0)                      AS soma,
	    COUNT(av.id) FILTER (WHERE av.nota >= $3)      AS satisfeitas,
	    COALESCE(MAX(g.pontos_total), 0)               AS pontos
	FROM atendentes a
	LEFT JOIN usuarios lu ON lu.id = a.usuario_id
	LEFT JOIN avaliacoes av
	       ON av.avaliado_id = a.id
	      AND av.created_at BETWEEN $1 AND $2
	LEFT JOIN gamificacao_atendentes g ON g.atendente_id = a.id`

const rowGroupBy = ` GROUP BY a.id, a.nome, a.cargo, a.setor, a.avatar_url`

// AtendenteRows devolve as contagens de todos os atendentes não INATIVO do filtro.
func (r *MetricsRepo) AtendenteRows(ctx context.Context, f repository.MetricsFilter) ([]metrics.Row, error) {
	w := whereBuilder{args: []any{f.Start, f.End, entity.NotaSatisfatoria}}
	w.add("a.status <> $%d", entity.AtendenteInativo)
	applyAtendenteScope(&w, f.Scope)
	if f.Cargo != "" {
		w.add("a.cargo = $%d", f.Cargo)
	}
	if f.Setor != "" {
		w.add("a.setor = $%d", f.Setor)
	}

	rows, err := r.q.Query(ctx, rowSelect+w.String()+rowGroupBy+` ORDER BY a.nome`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("metrics.AtendenteRows: %w", err)
	}
	defer rows.Close()
	list := make([]metrics.Row, 0)
	for rows.Next() {
		row, err := scanMetricsRow(rows)
		if err != nil {
			return nil, fmt.Errorf("metrics.AtendenteRows scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// AtendenteRow devolve a linha de um atendente, qualquer que seja o status.
func (r *MetricsRepo) AtendenteRow(ctx context.Context, atendenteID string, start, end time.Time) (*metrics.Row, error) {
	row, err := scanMetricsRow(r.q.QueryRow(ctx,
		rowSelect+` WHERE a.id = $4`+rowGroupBy, start, end, entity.NotaSatisfatoria, atendenteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("metrics.AtendenteRow: %w", err)
	}
	return &row, nil
}

// RatingDistribution conta avaliações da janela por nota.
func (r *MetricsRepo) RatingDistribution(ctx context.Context, f repository.MetricsFilter) (map[int]int, error) {
	w := whereBuilder{args: []any{f.Start, f.End}}
	w.raw("av.created_at BETWEEN $1 AND $2")
	w.add("a.status <> $%d", entity.AtendenteInativo)
	applyAtendenteScope(&w, f.Scope)
	if f.Cargo != "" {
		w.add("a.cargo = $%d", f.Cargo)
	}
	if f.Setor != "" {
		w.add("a.setor = $%d", f.Setor)
	}
	query := `
	SELECT av.nota, COUNT(*)
	FROM avaliacoes av
	JOIN atendentes a ON a.id = av.avaliado_id
	LEFT JOIN usuarios lu ON lu.id = a.usuario_id` + w.String() + `
	GROUP BY av.nota`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("metrics.RatingDistribution: %w", err)
	}
	defer rows.Close()
	dist := make(map[int]int, entity.NotaMax)
	for rows.Next() {
		var nota, n int
		if err := rows.Scan(&nota, &n); err != nil {
			return nil, fmt.Errorf("metrics.RatingDistribution scan: %w", err)
		}
		dist[nota] = n
	}
	return dist, rows.Err()
}

// MonthlyEvolution agrupa as avaliações do atendente por mês de criação.
func (r *MetricsRepo) MonthlyEvolution(ctx context.Context, atendenteID string, start, end time.Time) ([]repository.MonthlyPoint, error) {
	const query = `
	SELECT
	    to_char(av.created_at, 'YYYY-MM')          AS mes,
	    COUNT(*)                                   AS total,
	    ROUND(AVG(av.nota)::NUMERIC, 2)            AS media
	FROM avaliacoes av
	WHERE av.avaliado_id = $1
	  AND av.created_at BETWEEN $2 AND $3
	GROUP BY mes
	ORDER BY mes`

	rows, err := r.q.Query(ctx, query, atendenteID, start, end)
	if err != nil {
		return nil, fmt.Errorf("metrics.MonthlyEvolution: %w", err)
	}
	defer rows.Close()
	points := make([]repository.MonthlyPoint, 0)
	for rows.Next() {
		var p repository.MonthlyPoint
		if err := rows.Scan(&p.Periodo, &p.Total, &p.Media); err != nil {
			return nil, fmt.Errorf("metrics.MonthlyEvolution scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// RecentAvaliacoes devolve as últimas avaliações do atendente na janela.
func (r *MetricsRepo) RecentAvaliacoes(ctx context.Context, atendenteID string, start, end time.Time, limit int) ([]*entity.Avaliacao, error) {
	rows, err := r.q.Query(ctx,
		avaliacaoSelect+` WHERE av.avaliado_id = $1 AND av.created_at BETWEEN $2 AND $3
		ORDER BY av.created_at DESC, av.id LIMIT $4`,
		atendenteID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("metrics.RecentAvaliacoes: %w", err)
	}
	defer rows.Close()
	return collectAvaliacoes(rows)
}

// DashboardCounts conta atendentes, usuários, avaliações desde since e feedbacks pendentes no escopo.
func (r *MetricsRepo) DashboardCounts(ctx context.Context, scope repository.Scope, since time.Time) (repository.DashboardCounts, error) {
	var c repository.DashboardCounts

	var aw whereBuilder
	applyAtendenteScope(&aw, scope)
	err := r.q.QueryRow(ctx, `
	SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE a.status = '`+entity.AtendenteAtivo+`')
	FROM atendentes a
	LEFT JOIN usuarios lu ON lu.id = a.usuario_id`+aw.String(), aw.args...).Scan(&c.Atendentes, &c.AtendentesAtivos)
	if err != nil {
		return c, fmt.Errorf("metrics.DashboardCounts atendentes: %w", err)
	}

	vw := whereBuilder{args: []any{since}}
	vw.raw("av.created_at >= $1")
	applyAtendenteScope(&vw, scope)
	err = r.q.QueryRow(ctx, `
	SELECT COUNT(*)
	FROM avaliacoes av
	JOIN atendentes a ON a.id = av.avaliado_id
	LEFT JOIN usuarios lu ON lu.id = a.usuario_id`+vw.String(), vw.args...).Scan(&c.Avaliacoes)
	if err != nil {
		return c, fmt.Errorf("metrics.DashboardCounts avaliacoes: %w", err)
	}

	var uw whereBuilder
	switch {
	case scope.SupervisorID != "":
		uw.add("(u.supervisor_id = $%[1]d OR u.id = $%[1]d)", scope.SupervisorID)
	case scope.UserID != "":
		uw.add("u.id = $%d", scope.UserID)
	}
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios u`+uw.String(), uw.args...).Scan(&c.Usuarios); err != nil {
		return c, fmt.Errorf("metrics.DashboardCounts usuarios: %w", err)
	}

	fw := whereBuilder{args: []any{entity.FeedbackPendente}}
	fw.raw("f.status = $1")
	applyFeedbackScope(&fw, scope)
	err = r.q.QueryRow(ctx, `SELECT COUNT(*)`+feedbackFrom+fw.String(), fw.args...).Scan(&c.FeedbacksPendentes)
	if err != nil {
		return c, fmt.Errorf("metrics.DashboardCounts feedbacks: %w", err)
	}
	return c, nil
}

func scanMetricsRow(row pgx.Row) (metrics.Row, error) {
	var m metrics.Row
	err := row.Scan(&m.AtendenteID, &m.Name, &m.Cargo, &m.Setor, &m.AvatarURL, &m.Total, &m.SumNotas, &m.Satisfeitas, &m.Pontos)
	return m, err
}
