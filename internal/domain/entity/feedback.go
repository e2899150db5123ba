package entity

import "time"

// Tipos de feedback.
const (
	FeedbackElogio     = "ELOGIO"
	FeedbackSugestao   = "SUGESTAO"
	FeedbackReclamacao = "RECLAMACAO"
	FeedbackGeral      = "GERAL"
)

// Prioridades de feedback.
const (
	PrioridadeBaixa   = "BAIXA"
	PrioridadeMedia   = "MEDIA"
	PrioridadeAlta    = "ALTA"
	PrioridadeUrgente = "URGENTE"
)

// Status de feedback.
const (
	FeedbackPendente  = "PENDENTE"
	FeedbackEmAnalise = "EM_ANALISE"
	FeedbackResolvido = "RESOLVIDO"
	FeedbackArquivado = "ARQUIVADO"
)

// Feedback é uma mensagem de um usuário (remetente) sobre um atendente (destinatário).
type Feedback struct {
	ID             string
	Title          string
	Content        string
	Tipo           string
	Prioridade     string
	Status         string
	RemetenteID    string
	DestinatarioID string
	Resposta       string
	RespondidoEm   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Preenchidos em leituras com join.
	RemetenteName          string
	DestinatarioName       string
	DestinatarioUserID     *string
	DestinatarioSupervisor *string
}

// IsValidFeedbackTipo informa se o tipo é conhecido.
func IsValidFeedbackTipo(s string) bool {
	switch s {
	case FeedbackElogio, FeedbackSugestao, FeedbackReclamacao, FeedbackGeral:
		return true
	}
	return false
}

// IsValidPrioridade informa se a prioridade é conhecida.
func IsValidPrioridade(s string) bool {
	switch s {
	case PrioridadeBaixa, PrioridadeMedia, PrioridadeAlta, PrioridadeUrgente:
		return true
	}
	return false
}

// IsValidFeedbackStatus informa se o status é conhecido.
func IsValidFeedbackStatus(s string) bool {
	switch s {
	case FeedbackPendente, FeedbackEmAnalise, FeedbackResolvido, FeedbackArquivado:
		return true
	}
	return false
}
