package metrics

import (
	"fmt"
	"time"

	"github.com/koerner360/koerner360-api/internal/domain"
)

// Períodos aceitos pelo agregador.
const (
	Period7d       = "7d"
	Period30d      = "30d"
	Period90d      = "90d"
	Period1y       = "1y"
	PeriodMesAtual = "mes_atual"
	PeriodCustom   = "custom"

	DefaultPeriod = Period30d
	dateLayout    = "2006-01-02"
)

// Window é o intervalo fechado [Start, End] usado nas consultas.
type Window struct {
	Kind  string
	Start time.Time
	End   time.Time
}

// ResolveWindow converte o período pedido em um intervalo concreto relativo a now.
// Para "custom", inicio e fim (YYYY-MM-DD) são obrigatórios e fim vale até o fim do dia.
func ResolveWindow(kind, inicio, fim string, now time.Time) (Window, error) {
	if kind == "" {
		kind = DefaultPeriod
	}
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	endOfToday := endOfDay(today)

	switch kind {
	case Period7d:
		return Window{Kind: kind, Start: today.AddDate(0, 0, -7), End: endOfToday}, nil
	case Period30d:
		return Window{Kind: kind, Start: today.AddDate(0, 0, -30), End: endOfToday}, nil
	case Period90d:
		return Window{Kind: kind, Start: today.AddDate(0, 0, -90), End: endOfToday}, nil
	case Period1y:
		return Window{Kind: kind, Start: today.AddDate(-1, 0, 0), End: endOfToday}, nil
	case PeriodMesAtual:
		return Window{Kind: kind, Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), End: endOfToday}, nil
	case PeriodCustom:
		if inicio == "" || fim == "" {
			return Window{}, fmt.Errorf("%w: inicio e fim são obrigatórios no período custom", domain.ErrInvalidPeriod)
		}
		start, err := time.ParseInLocation(dateLayout, inicio, loc)
		if err != nil {
			return Window{}, fmt.Errorf("%w: inicio inválido", domain.ErrInvalidPeriod)
		}
		end, err := time.ParseInLocation(dateLayout, fim, loc)
		if err != nil {
			return Window{}, fmt.Errorf("%w: fim inválido", domain.ErrInvalidPeriod)
		}
		if start.After(end) {
			return Window{}, fmt.Errorf("%w: inicio posterior a fim", domain.ErrInvalidPeriod)
		}
		return Window{Kind: kind, Start: start, End: endOfDay(end)}, nil
	}
	return Window{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, kind)
}

func endOfDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1).Add(-time.Millisecond)
}
