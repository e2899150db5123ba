package dto

import "time"

// CreateAvaliacaoRequest entrada para registrar avaliação. Periodo em YYYY-MM
// (vazio = mês corrente).
type CreateAvaliacaoRequest struct {
	AtendenteID string `json:"atendenteId"`
	Nota        int    `json:"nota"`
	Comentario  string `json:"comentario"`
	Periodo     string `json:"periodo"`
}

// UpdateAvaliacaoRequest atualização parcial.
type UpdateAvaliacaoRequest struct {
	Nota       *int    `json:"nota"`
	Comentario *string `json:"comentario"`
}

// AvaliacaoListQuery filtros de GET /api/avaliacoes.
type AvaliacaoListQuery struct {
	PageRequest
	AtendenteID string `query:"atendenteId"`
	AvaliadorID string `query:"avaliadorId"`
	Periodo     string `query:"periodo"`
}

// AvaliacaoResponse saída de avaliação.
type AvaliacaoResponse struct {
	ID            string    `json:"id"`
	AtendenteID   string    `json:"atendenteId"`
	AtendenteName string    `json:"atendenteNome,omitempty"`
	AvaliadorID   string    `json:"avaliadorId"`
	AvaliadorName string    `json:"avaliadorNome,omitempty"`
	Nota          int       `json:"nota"`
	Comentario    string    `json:"comentario"`
	Periodo       string    `json:"periodo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
