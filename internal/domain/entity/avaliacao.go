package entity

import "time"

// Limites da nota de uma avaliação.
const (
	NotaMin = 1
	NotaMax = 5
	// NotaSatisfatoria é a menor nota contada como "satisfeito" nas métricas.
	NotaSatisfatoria = 4
)

// Avaliacao é a nota (1 a 5) dada por um avaliador a um atendente em um período (YYYY-MM).
type Avaliacao struct {
	ID          string
	AtendenteID string
	AvaliadorID string
	Nota        int
	Comentario  string
	Periodo     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Preenchidos em leituras com join.
	AtendenteName       string
	AvaliadorName       string
	AtendenteUserID     *string
	AtendenteSupervisor *string
}
