// Package pdf gera o relatório de ranking de atendentes em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Koerner 360 + título  │  período + emissão       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: # | Atendente | Cargo | Setor | Aval. | Média | %   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: total de atendentes + legenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/application/ports"
)

var _ ports.RankingPDFGenerator = (*RankingPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// RankingPDFGenerator implementa ports.RankingPDFGenerator com Maroto v2.
type RankingPDFGenerator struct {
	now func() time.Time
}

// NewRankingPDFGenerator constrói o gerador.
func NewRankingPDFGenerator() *RankingPDFGenerator {
	return &RankingPDFGenerator{now: time.Now}
}

// GenerateRankingPDF gera o PDF e devolve seus bytes.
func (g *RankingPDFGenerator) GenerateRankingPDF(ctx context.Context, report *dto.RankingResponseDTO, generatedBy string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ranking de Atendentes", true).
		WithAuthor("Koerner 360", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(report.Periodo, generatedBy, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(report.Items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(p dto.PeriodDTO, generatedBy string, at time.Time) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New("KOERNER 360", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Ranking de Atendentes", props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+brDate(p.Inicio)+" a "+brDate(p.Fim), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Emitido em "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Por: "+nonEmpty(generatedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow soma 12 colunas, igual às linhas de dados.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Atendente", 4, align.Left),
		h("Cargo", 2, align.Left),
		h("Setor", 2, align.Left),
		h("Aval.", 1, align.Center),
		h("Média", 1, align.Center),
		h("Satisf.", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(items []dto.RankingItemDTO) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		r := row.New(7).Add(
			cell(strconv.Itoa(it.Posicao), 1, align.Center),
			cell(it.Name, 4, align.Left),
			cell(nonEmpty(it.Cargo, "-"), 2, align.Left),
			cell(nonEmpty(it.Setor, "-"), 2, align.Left),
			cell(strconv.Itoa(it.TotalAvaliacoes), 1, align.Center),
			cell(brDecimal(it.MediaAvaliacoes), 1, align.Center),
			cell(brDecimal(it.Satisfacao)+"%", 1, align.Right),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Nenhum atendente no período.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	return rows
}

func footerRow(total int) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de atendentes: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2,
		}),
		text.New("Satisfação: percentual de avaliações com nota 4 ou 5 no período.", props.Text{
			Size: 7, Top: 7, Color: colorGray,
		}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// brDecimal formata com 2 casas e vírgula decimal. Ex: 4.5 → "4,50".
func brDecimal(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// brDate converte YYYY-MM-DD em DD/MM/YYYY; devolve s se não casar.
func brDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}
