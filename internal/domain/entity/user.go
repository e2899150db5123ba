package entity

import "time"

// Perfis de acesso válidos para User.
const (
	RoleAdmin      = "ADMIN"
	RoleSupervisor = "SUPERVISOR"
	RoleAtendente  = "ATENDENTE"
	RoleConsultor  = "CONSULTOR"
)

// Roles lista todos os perfis conhecidos, do mais ao menos privilegiado.
var Roles = []string{RoleAdmin, RoleSupervisor, RoleAtendente, RoleConsultor}

// IsValidRole informa se o perfil é conhecido.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa um usuário com acesso ao sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca em texto plano depois de persistido
	Role         string
	SupervisorID *string // nil quando o usuário não responde a um supervisor
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupervisorIDValue devolve o supervisor ou "" quando não há.
func (u *User) SupervisorIDValue() string {
	if u == nil || u.SupervisorID == nil {
		return ""
	}
	return *u.SupervisorID
}
