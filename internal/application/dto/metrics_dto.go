package dto

import "github.com/shopspring/decimal"

// MetricsQuery parâmetros das rotas /api/metricas.
type MetricsQuery struct {
	Periodo string `query:"periodo"` // 7d|30d|90d|1y|mes_atual|custom
	Inicio  string `query:"inicio"`  // YYYY-MM-DD (custom)
	Fim     string `query:"fim"`     // YYYY-MM-DD (custom)
	Cargo   string `query:"cargo"`
	Setor   string `query:"setor"`
	SortBy  string `query:"ordenarPor"` // media|satisfacao|total|pontos|nome
	Order   string `query:"ordem"`      // asc|desc
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
}

// PeriodDTO intervalo efetivamente usado.
type PeriodDTO struct {
	Tipo   string `json:"tipo"`
	Inicio string `json:"inicio"`
	Fim    string `json:"fim"`
}

// RankingItemDTO linha do ranking.
type RankingItemDTO struct {
	Posicao         int             `json:"posicao"`
	AtendenteID     string          `json:"atendenteId"`
	Name            string          `json:"nome"`
	Cargo           string          `json:"cargo"`
	Setor           string          `json:"setor"`
	AvatarURL       string          `json:"avatarUrl,omitempty"`
	TotalAvaliacoes int             `json:"totalAvaliacoes"`
	MediaAvaliacoes decimal.Decimal `json:"mediaAvaliacoes"`
	Satisfacao      decimal.Decimal `json:"satisfacao"` // % de notas >= 4
	Pontuacao       int             `json:"pontuacao"`
}

// RankingResponseDTO saída de GET /api/metricas/ranking.
type RankingResponseDTO struct {
	Periodo    PeriodDTO        `json:"periodo"`
	Items      []RankingItemDTO `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// ResumoDTO saída de GET /api/metricas/resumo.
type ResumoDTO struct {
	Periodo             PeriodDTO        `json:"periodo"`
	TotalAtendentes     int              `json:"totalAtendentes"`
	AtendentesAvaliados int              `json:"atendentesAvaliados"`
	TotalAvaliacoes     int              `json:"totalAvaliacoes"`
	MediaGeral          decimal.Decimal  `json:"mediaGeral"`
	SatisfacaoGeral     decimal.Decimal  `json:"satisfacaoGeral"`
	Distribuicao        map[string]int   `json:"distribuicao"` // "1".."5"
	Top                 []RankingItemDTO `json:"top"`
}

// MonthlyPointDTO ponto da evolução mensal.
type MonthlyPointDTO struct {
	Periodo string          `json:"periodo"`
	Total   int             `json:"total"`
	Media   decimal.Decimal `json:"media"`
}

// AtendenteMetricsDTO saída de GET /api/metricas/atendentes/:id.
type AtendenteMetricsDTO struct {
	Periodo           PeriodDTO           `json:"periodo"`
	Metricas          RankingItemDTO      `json:"metricas"`
	EvolucaoMensal    []MonthlyPointDTO   `json:"evolucaoMensal"`
	UltimasAvaliacoes []AvaliacaoResponse `json:"ultimasAvaliacoes"`
}

// DashboardDTO saída de GET /api/dashboard/resumo.
type DashboardDTO struct {
	TotalAtendentes    int              `json:"totalAtendentes"`
	AtendentesAtivos   int              `json:"atendentesAtivos"`
	TotalUsuarios      int              `json:"totalUsuarios"`
	AvaliacoesNoMes    int              `json:"avaliacoesNoMes"`
	FeedbacksPendentes int              `json:"feedbacksPendentes"`
	MediaMes           decimal.Decimal  `json:"mediaMes"`
	SatisfacaoMes      decimal.Decimal  `json:"satisfacaoMes"`
	Top                []RankingItemDTO `json:"top"`
	DateLabel          string           `json:"dateLabel"`
}
