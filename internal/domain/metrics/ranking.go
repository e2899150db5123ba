package metrics

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/koerner360/koerner360-api/internal/domain"
)

// SortKey é a chave de ordenação do ranking.
type SortKey string

const (
	SortMedia      SortKey = "media"
	SortSatisfacao SortKey = "satisfacao"
	SortTotal      SortKey = "total"
	SortPontos     SortKey = "pontos"
	SortNome       SortKey = "nome"
)

// Paginação padrão.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParseSortKey valida a chave; vazio vira SortMedia.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortMedia, nil
	case SortMedia, SortSatisfacao, SortTotal, SortPontos, SortNome:
		return k, nil
	}
	return "", fmt.Errorf("%w: ordenação %q", domain.ErrInvalidInput, s)
}

// ParseOrder devolve true para ordem decrescente. Vazio vira "desc".
func ParseOrder(s string) (desc bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return true, nil
	case "asc":
		return false, nil
	}
	return false, fmt.Errorf("%w: ordem %q", domain.ErrInvalidInput, s)
}

// Sort ordena in-place e preenche Posicao (1-based).
// Empates na chave principal caem para nome (colação pt-BR, crescente) e depois id.
func Sort(scores []Score, key SortKey, desc bool) {
	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase, collate.IgnoreDiacritics)

	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		var c int
		switch key {
		case SortSatisfacao:
			c = a.Satisfacao.Cmp(b.Satisfacao)
		case SortTotal:
			c = compareInt(a.Total, b.Total)
		case SortPontos:
			c = compareInt(a.Pontos, b.Pontos)
		case SortNome:
			c = col.CompareString(a.Name, b.Name)
		default:
			c = a.Media.Cmp(b.Media)
		}
		if c != 0 {
			if desc {
				return c > 0
			}
			return c < 0
		}
		if key != SortNome {
			if n := col.CompareString(a.Name, b.Name); n != 0 {
				return n < 0
			}
		}
		return a.AtendenteID < b.AtendenteID
	})

	for i := range scores {
		scores[i].Posicao = i + 1
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Page descreve a página devolvida.
type Page struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// NormalizePage aplica padrões e limites a page/limit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Paginate recorta a lista já ordenada.
func Paginate(scores []Score, page, limit int) ([]Score, Page) {
	page, limit = NormalizePage(page, limit)
	total := len(scores)
	p := Page{Page: page, Limit: limit, Total: total, TotalPages: (total + limit - 1) / limit}

	if page > p.TotalPages {
		return []Score{}, p
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	return scores[start:end], p
}
