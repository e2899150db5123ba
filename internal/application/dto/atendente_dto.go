package dto

import "time"

// CreateAtendenteRequest entrada para criar atendente. Datas em YYYY-MM-DD.
type CreateAtendenteRequest struct {
	Name          string  `json:"nome"`
	Email         string  `json:"email"`
	CPF           string  `json:"cpf"`
	Phone         string  `json:"telefone"`
	Cargo         string  `json:"cargo"`
	Setor         string  `json:"setor"`
	Portaria      string  `json:"portaria"`
	AdmissionDate string  `json:"dataAdmissao"`
	BirthDate     *string `json:"dataNascimento"`
	Status        string  `json:"status"`
	AvatarURL     string  `json:"avatarUrl"`
	Notes         string  `json:"observacoes"`
	UserID        *string `json:"usuarioId"`
}

// UpdateAtendenteRequest atualização parcial.
type UpdateAtendenteRequest struct {
	Name          *string `json:"nome"`
	Email         *string `json:"email"`
	CPF           *string `json:"cpf"`
	Phone         *string `json:"telefone"`
	Cargo         *string `json:"cargo"`
	Setor         *string `json:"setor"`
	Portaria      *string `json:"portaria"`
	AdmissionDate *string `json:"dataAdmissao"`
	BirthDate     *string `json:"dataNascimento"`
	Status        *string `json:"status"`
	AvatarURL     *string `json:"avatarUrl"`
	Notes         *string `json:"observacoes"`
}

// AtendenteListQuery filtros de GET /api/atendentes.
type AtendenteListQuery struct {
	PageRequest
	Status string `query:"status"`
	Cargo  string `query:"cargo"`
	Setor  string `query:"setor"`
	Search string `query:"busca"`
}

// AtendenteResponse saída de atendente.
type AtendenteResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"nome"`
	Email         string    `json:"email"`
	CPF           string    `json:"cpf"`
	Phone         string    `json:"telefone"`
	Cargo         string    `json:"cargo"`
	Setor         string    `json:"setor"`
	Portaria      string    `json:"portaria"`
	AdmissionDate string    `json:"dataAdmissao"`
	BirthDate     *string   `json:"dataNascimento"`
	Status        string    `json:"status"`
	AvatarURL     string    `json:"avatarUrl"`
	Notes         string    `json:"observacoes"`
	UserID        *string   `json:"usuarioId"`
	SupervisorID  *string   `json:"supervisorId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
