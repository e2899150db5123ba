package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koerner360/koerner360-api/internal/application/dto"
)

func TestGenerateRankingPDF(t *testing.T) {
	report := &dto.RankingResponseDTO{
		Periodo: dto.PeriodDTO{Tipo: "30d", Inicio: "2026-09-17", Fim: "2026-10-17"},
		Items: []dto.RankingItemDTO{
			{Posicao: 1, Name: "Ana Souza", Cargo: "Porteiro", Setor: "Bloco A", TotalAvaliacoes: 4,
				MediaAvaliacoes: decimal.RequireFromString("4.75"), Satisfacao: decimal.NewFromInt(100)},
			{Posicao: 2, Name: "João Lima", TotalAvaliacoes: 2,
				MediaAvaliacoes: decimal.RequireFromString("3.5"), Satisfacao: decimal.NewFromInt(50)},
		},
	}

	out, err := NewRankingPDFGenerator().GenerateRankingPDF(context.Background(), report, "Admin")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateRankingPDF_Vazio(t *testing.T) {
	out, err := NewRankingPDFGenerator().GenerateRankingPDF(context.Background(), &dto.RankingResponseDTO{}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateRankingPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRankingPDFGenerator().GenerateRankingPDF(ctx, &dto.RankingResponseDTO{}, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBrFormat(t *testing.T) {
	assert.Equal(t, "4,50", brDecimal(decimal.RequireFromString("4.5")))
	assert.Equal(t, "0,00", brDecimal(decimal.Zero))
	assert.Equal(t, "17/10/2026", brDate("2026-10-17"))
	assert.Equal(t, "", brDate(""))
}
