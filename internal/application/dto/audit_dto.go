package dto

import "time"

// AuditLogQuery filtros de GET /api/audit-logs. Datas em YYYY-MM-DD.
type AuditLogQuery struct {
	PageRequest
	UserID   string `query:"usuarioId"`
	Entity   string `query:"entidade"`
	EntityID string `query:"entidadeId"`
	From     string `query:"de"`
	To       string `query:"ate"`
}

// AuditLogResponse linha da trilha de auditoria.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"usuarioId"`
	Action    string    `json:"acao"`
	Entity    string    `json:"entidade"`
	EntityID  string    `json:"entidadeId"`
	Details   string    `json:"detalhes"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}
