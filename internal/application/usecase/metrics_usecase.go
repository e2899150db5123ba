package usecase

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/ports"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/metrics"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

const (
	resumoTopN        = 5
	recentAvaliacoesN = 10
	pdfMaxRows        = 500
)

// MetricsUseCase calcula ranking, resumo e detalhe de atendentes a partir das
// contagens brutas; nada é guardado entre requisições.
type MetricsUseCase struct {
	repo       repository.MetricsRepository
	atendentes repository.AtendenteRepository
	pdf        ports.RankingPDFGenerator
	now        Clock
}

// NewMetricsUseCase constrói o caso de uso. pdf pode ser nil quando o relatório não é exposto.
func NewMetricsUseCase(repo repository.MetricsRepository, atendentes repository.AtendenteRepository, pdf ports.RankingPDFGenerator) *MetricsUseCase {
	return &MetricsUseCase{repo: repo, atendentes: atendentes, pdf: pdf, now: defaultClock}
}

// Ranking devolve a página pedida do ranking ordenado.
func (uc *MetricsUseCase) Ranking(ctx context.Context, actor permission.Actor, q dto.MetricsQuery) (*dto.RankingResponseDTO, error) {
	f, w, err := uc.filter(actor, q)
	if err != nil {
		return nil, err
	}
	key, err := metrics.ParseSortKey(q.SortBy)
	if err != nil {
		return nil, err
	}
	desc, err := metrics.ParseOrder(q.Order)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.AtendenteRows(ctx, f)
	if err != nil {
		return nil, err
	}
	scores := metrics.Compute(rows)
	metrics.Sort(scores, key, desc)
	page, p := metrics.Paginate(scores, q.Page, q.Limit)

	return &dto.RankingResponseDTO{
		Periodo: toPeriodDTO(w),
		Items:   toRankingItems(page),
		Pagination: dto.Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}, nil
}

// Resumo agrega o período: totais, média ponderada, satisfação, distribuição
// de notas e os cinco melhores por média.
func (uc *MetricsUseCase) Resumo(ctx context.Context, actor permission.Actor, q dto.MetricsQuery) (*dto.ResumoDTO, error) {
	f, w, err := uc.filter(actor, q)
	if err != nil {
		return nil, err
	}

	var (
		rows []metrics.Row
		dist map[int]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = uc.repo.AtendenteRows(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		dist, err = uc.repo.RatingDistribution(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := metrics.Summarize(rows, dist)
	scores := metrics.Compute(rows)
	metrics.Sort(scores, metrics.SortMedia, true)
	top, _ := metrics.Paginate(scores, 1, resumoTopN)

	out := &dto.ResumoDTO{
		Periodo:             toPeriodDTO(w),
		TotalAtendentes:     s.Atendentes,
		AtendentesAvaliados: s.Avaliados,
		TotalAvaliacoes:     s.Avaliacoes,
		MediaGeral:          s.Media,
		SatisfacaoGeral:     s.Satisfacao,
		Distribuicao:        make(map[string]int, len(s.Distribuicao)),
		Top:                 toRankingItems(top),
	}
	for nota, n := range s.Distribuicao {
		out.Distribuicao[strconv.Itoa(nota)] = n
	}
	return out, nil
}

// AtendenteDetail devolve as métricas de um atendente, a evolução mensal na
// janela e as últimas avaliações.
func (uc *MetricsUseCase) AtendenteDetail(ctx context.Context, actor permission.Actor, id string, q dto.MetricsQuery) (*dto.AtendenteMetricsDTO, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	a, err := uc.atendentes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAtendenteNotFound
	}
	if !permission.CanAccessRecord(actor, a.OwnerID(), a.SupervisorIDValue()) {
		return nil, domain.ErrForbidden
	}
	w, err := metrics.ResolveWindow(q.Periodo, q.Inicio, q.Fim, uc.now())
	if err != nil {
		return nil, err
	}

	var (
		row     *metrics.Row
		monthly []repository.MonthlyPoint
		recent  []*entity.Avaliacao
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		row, err = uc.repo.AtendenteRow(gctx, a.ID, w.Start, w.End)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = uc.repo.MonthlyEvolution(gctx, a.ID, w.Start, w.End)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = uc.repo.RecentAvaliacoes(gctx, a.ID, w.Start, w.End, recentAvaliacoesN)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if row == nil {
		row = &metrics.Row{AtendenteID: a.ID, Name: a.Name, Cargo: a.Cargo, Setor: a.Setor, AvatarURL: a.AvatarURL}
	}
	score := metrics.Compute([]metrics.Row{*row})[0]

	out := &dto.AtendenteMetricsDTO{
		Periodo:           toPeriodDTO(w),
		Metricas:          toRankingItem(score),
		EvolucaoMensal:    make([]dto.MonthlyPointDTO, 0, len(monthly)),
		UltimasAvaliacoes: make([]dto.AvaliacaoResponse, 0, len(recent)),
	}
	for _, m := range monthly {
		out.EvolucaoMensal = append(out.EvolucaoMensal, dto.MonthlyPointDTO{Periodo: m.Periodo, Total: m.Total, Media: m.Media.Round(2)})
	}
	for _, av := range recent {
		out.UltimasAvaliacoes = append(out.UltimasAvaliacoes, *ToAvaliacaoResponse(av))
	}
	return out, nil
}

// RankingPDF gera o relatório com o ranking completo (sem paginação).
func (uc *MetricsUseCase) RankingPDF(ctx context.Context, actor permission.Actor, q dto.MetricsQuery, generatedBy string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, domain.ErrNotFound
	}
	f, w, err := uc.filter(actor, q)
	if err != nil {
		return nil, err
	}
	key, err := metrics.ParseSortKey(q.SortBy)
	if err != nil {
		return nil, err
	}
	desc, err := metrics.ParseOrder(q.Order)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.AtendenteRows(ctx, f)
	if err != nil {
		return nil, err
	}
	scores := metrics.Compute(rows)
	metrics.Sort(scores, key, desc)
	if len(scores) > pdfMaxRows {
		scores = scores[:pdfMaxRows]
	}
	report := &dto.RankingResponseDTO{
		Periodo: toPeriodDTO(w),
		Items:   toRankingItems(scores),
		Pagination: dto.Pagination{
			Page: 1, Limit: pdfMaxRows, Total: len(rows), TotalPages: 1,
		},
	}
	return uc.pdf.GenerateRankingPDF(ctx, report, generatedBy)
}

// filter valida o acesso às visões agregadas e monta o recorte da consulta.
func (uc *MetricsUseCase) filter(actor permission.Actor, q dto.MetricsQuery) (repository.MetricsFilter, metrics.Window, error) {
	caps := permission.For(actor.Role)
	if !caps.CanViewAll && !caps.CanViewTeam {
		return repository.MetricsFilter{}, metrics.Window{}, domain.ErrForbidden
	}
	scope, err := scopeFor(actor)
	if err != nil {
		return repository.MetricsFilter{}, metrics.Window{}, err
	}
	w, err := metrics.ResolveWindow(q.Periodo, q.Inicio, q.Fim, uc.now())
	if err != nil {
		return repository.MetricsFilter{}, metrics.Window{}, err
	}
	return repository.MetricsFilter{
		Scope: scope,
		Start: w.Start,
		End:   w.End,
		Cargo: strings.TrimSpace(q.Cargo),
		Setor: strings.TrimSpace(q.Setor),
	}, w, nil
}

func toPeriodDTO(w metrics.Window) dto.PeriodDTO {
	return dto.PeriodDTO{Tipo: w.Kind, Inicio: formatDate(w.Start), Fim: formatDate(w.End)}
}

func toRankingItem(s metrics.Score) dto.RankingItemDTO {
	return dto.RankingItemDTO{
		Posicao:         s.Posicao,
		AtendenteID:     s.AtendenteID,
		Name:            s.Name,
		Cargo:           s.Cargo,
		Setor:           s.Setor,
		AvatarURL:       s.AvatarURL,
		TotalAvaliacoes: s.Total,
		MediaAvaliacoes: s.Media,
		Satisfacao:      s.Satisfacao,
		Pontuacao:       s.Pontos,
	}
}

func toRankingItems(scores []metrics.Score) []dto.RankingItemDTO {
	out := make([]dto.RankingItemDTO, 0, len(scores))
	for _, s := range scores {
		out = append(out, toRankingItem(s))
	}
	return out
}
