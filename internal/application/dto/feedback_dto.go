package dto

import "time"

// CreateFeedbackRequest entrada para registrar feedback sobre um atendente.
type CreateFeedbackRequest struct {
	Title          string `json:"titulo"`
	Content        string `json:"conteudo"`
	Tipo           string `json:"tipo"`
	Prioridade     string `json:"prioridade"`
	DestinatarioID string `json:"destinatarioId"`
}

// UpdateFeedbackRequest atualização de acompanhamento.
type UpdateFeedbackRequest struct {
	Status     *string `json:"status"`
	Prioridade *string `json:"prioridade"`
	Resposta   *string `json:"resposta"`
}

// FeedbackListQuery filtros de GET /api/feedbacks.
type FeedbackListQuery struct {
	PageRequest
	DestinatarioID string `query:"destinatarioId"`
	Tipo           string `query:"tipo"`
	Prioridade     string `query:"prioridade"`
	Status         string `query:"status"`
}

// FeedbackResponse saída de feedback.
type FeedbackResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"titulo"`
	Content          string     `json:"conteudo"`
	Tipo             string     `json:"tipo"`
	Prioridade       string     `json:"prioridade"`
	Status           string     `json:"status"`
	RemetenteID      string     `json:"remetenteId"`
	RemetenteName    string     `json:"remetenteNome,omitempty"`
	DestinatarioID   string     `json:"destinatarioId"`
	DestinatarioName string     `json:"destinatarioNome,omitempty"`
	Resposta         string     `json:"resposta"`
	RespondidoEm     *time.Time `json:"respondidoEm"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
