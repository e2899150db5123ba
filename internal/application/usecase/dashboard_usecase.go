package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/domain/metrics"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

const dashboardTopN = 5

var mesesPtBR = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// DashboardUseCase monta o painel inicial com contadores do escopo do ator.
type DashboardUseCase struct {
	repo repository.MetricsRepository
	now  Clock
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(repo repository.MetricsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: defaultClock}
}

// Resumo consulta contadores e linhas do mês em paralelo.
func (uc *DashboardUseCase) Resumo(ctx context.Context, actor permission.Actor) (*dto.DashboardDTO, error) {
	scope, err := scopeFor(actor)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	w, err := metrics.ResolveWindow(metrics.PeriodMesAtual, "", "", now)
	if err != nil {
		return nil, err
	}

	var (
		counts repository.DashboardCounts
		rows   []metrics.Row
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = uc.repo.DashboardCounts(gctx, scope, w.Start)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = uc.repo.AtendenteRows(gctx, repository.MetricsFilter{Scope: scope, Start: w.Start, End: w.End})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := metrics.Summarize(rows, nil)
	scores := metrics.Compute(rows)
	metrics.Sort(scores, metrics.SortMedia, true)
	top, _ := metrics.Paginate(scores, 1, dashboardTopN)

	return &dto.DashboardDTO{
		TotalAtendentes:    counts.Atendentes,
		AtendentesAtivos:   counts.AtendentesAtivos,
		TotalUsuarios:      counts.Usuarios,
		AvaliacoesNoMes:    counts.Avaliacoes,
		FeedbacksPendentes: counts.FeedbacksPendentes,
		MediaMes:           s.Media,
		SatisfacaoMes:      s.Satisfacao,
		Top:                toRankingItems(top),
		DateLabel:          dateLabel(now),
	}, nil
}

// dateLabel formata "17 de outubro de 2026".
func dateLabel(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), mesesPtBR[t.Month()-1], t.Year())
}
