package entity

import "time"

// Ações registradas na trilha de auditoria.
const (
	AuditCreate     = "CREATE"
	AuditUpdate     = "UPDATE"
	AuditDeactivate = "DEACTIVATE"
	AuditActivate   = "ACTIVATE"
	AuditLogin      = "LOGIN"
	AuditLogout     = "LOGOUT"
)

// AuditLog registra uma ação de um usuário sobre uma entidade.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Entity    string // "usuario", "atendente", "avaliacao", ...
	EntityID  string
	Details   string // JSON
	IP        string
	CreatedAt time.Time
}
