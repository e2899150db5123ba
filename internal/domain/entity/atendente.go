package entity

import "time"

// Status do atendente.
const (
	AtendenteAtivo    = "ATIVO"
	AtendenteFerias   = "FERIAS"
	AtendenteAfastado = "AFASTADO"
	AtendenteInativo  = "INATIVO"
)

// Atendente é o colaborador avaliado pelo sistema. Pode estar vinculado a um User.
type Atendente struct {
	ID            string
	Name          string
	Email         string
	CPF           string // apenas dígitos
	Phone         string
	Cargo         string
	Setor         string
	Portaria      string
	AdmissionDate time.Time
	BirthDate     *time.Time
	Status        string
	AvatarURL     string
	Notes         string
	UserID        *string // usuário vinculado
	SupervisorID  *string // supervisor do usuário vinculado (somente leitura, vem de join)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsValidAtendenteStatus informa se o status é conhecido.
func IsValidAtendenteStatus(s string) bool {
	switch s {
	case AtendenteAtivo, AtendenteFerias, AtendenteAfastado, AtendenteInativo:
		return true
	}
	return false
}

// OwnerID devolve o usuário vinculado ou "".
func (a *Atendente) OwnerID() string {
	if a == nil || a.UserID == nil {
		return ""
	}
	return *a.UserID
}

// SupervisorIDValue devolve o supervisor do usuário vinculado ou "".
func (a *Atendente) SupervisorIDValue() string {
	if a == nil || a.SupervisorID == nil {
		return ""
	}
	return *a.SupervisorID
}
