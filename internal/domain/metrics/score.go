// Package metrics reúne a aritmética do ranking de atendentes: média das notas,
// percentual de satisfação, ordenação e paginação. Tudo é recalculado a cada
// requisição a partir das contagens brutas vindas do banco.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Row são as contagens brutas de um atendente na janela consultada.
type Row struct {
	AtendenteID string
	Name        string
	Cargo       string
	Setor       string
	AvatarURL   string
	Total       int // avaliações na janela
	SumNotas    int
	Satisfeitas int // avaliações com nota >= entity.NotaSatisfatoria
	Pontos      int // pontuação de gamificação (desnormalizada)
}

// Score é a linha do ranking já calculada.
type Score struct {
	Row
	Media      decimal.Decimal
	Satisfacao decimal.Decimal
	Posicao    int
}

// Media devolve sum/total com 2 casas; zero quando não há avaliações.
func Media(sum, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(total))).Round(2)
}

// Satisfacao devolve satisfeitas/total × 100 com 2 casas; zero quando não há avaliações.
func Satisfacao(satisfeitas, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(satisfeitas)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).
		Round(2)
}

// Compute calcula média e satisfação de cada linha.
func Compute(rows []Row) []Score {
	out := make([]Score, 0, len(rows))
	for _, r := range rows {
		out = append(out, Score{
			Row:        r,
			Media:      Media(r.SumNotas, r.Total),
			Satisfacao: Satisfacao(r.Satisfeitas, r.Total),
		})
	}
	return out
}

// Summary é o resumo agregado de todas as linhas.
type Summary struct {
	Atendentes   int
	Avaliados    int
	Avaliacoes   int
	Media        decimal.Decimal
	Satisfacao   decimal.Decimal
	Distribuicao map[int]int // nota -> quantidade
}

// Summarize agrega as linhas (média ponderada pelo número de avaliações).
// dist é a distribuição de notas vinda do banco; notas fora de 1..5 são ignoradas.
func Summarize(rows []Row, dist map[int]int) Summary {
	s := Summary{Atendentes: len(rows), Distribuicao: make(map[int]int, entity.NotaMax)}
	var sum, sat int
	for _, r := range rows {
		if r.Total > 0 {
			s.Avaliados++
		}
		s.Avaliacoes += r.Total
		sum += r.SumNotas
		sat += r.Satisfeitas
	}
	s.Media = Media(sum, s.Avaliacoes)
	s.Satisfacao = Satisfacao(sat, s.Avaliacoes)
	for nota := entity.NotaMin; nota <= entity.NotaMax; nota++ {
		s.Distribuicao[nota] = dist[nota]
	}
	return s
}
