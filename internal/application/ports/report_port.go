package ports

import (
	"context"

	"github.com/koerner360/koerner360-api/internal/application/dto"
)

// RankingPDFGenerator gera o relatório do ranking em PDF.
type RankingPDFGenerator interface {
	GenerateRankingPDF(ctx context.Context, report *dto.RankingResponseDTO, generatedBy string) ([]byte, error)
}
