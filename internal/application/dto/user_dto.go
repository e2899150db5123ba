package dto

import (
	"time"

	"github.com/koerner360/koerner360-api/internal/domain/permission"
)

// CreateUserRequest entrada para criar usuário (senha em texto, vira hash no use case).
// Com CriarAtendente=true o atendente é criado e vinculado na mesma transação;
// AtendenteID vincula um atendente existente.
type CreateUserRequest struct {
	Name           string                  `json:"nome"`
	Email          string                  `json:"email"`
	Password       string                  `json:"senha"`
	Role           string                  `json:"tipoUsuario"`
	SupervisorID   *string                 `json:"supervisorId"`
	CriarAtendente bool                    `json:"criarAtendente"`
	Atendente      *CreateAtendenteRequest `json:"atendente"`
	AtendenteID    string                  `json:"atendenteId"`
}

// UpdateUserRequest atualização parcial de usuário.
type UpdateUserRequest struct {
	Name         *string `json:"nome"`
	Email        *string `json:"email"`
	Password     *string `json:"senha"`
	Role         *string `json:"tipoUsuario"`
	SupervisorID *string `json:"supervisorId"`
}

// UpdateStatusRequest ativa/desativa um usuário.
type UpdateStatusRequest struct {
	Active *bool `json:"ativo"`
}

// UserListQuery filtros de GET /api/usuarios.
type UserListQuery struct {
	PageRequest
	Role   string `query:"tipoUsuario"`
	Active string `query:"ativo"` // "true" | "false" | ""
	Search string `query:"busca"`
}

// UserResponse saída de usuário (sem senha).
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	Role         string    `json:"tipoUsuario"`
	SupervisorID *string   `json:"supervisorId"`
	Active       bool      `json:"ativo"`
	AtendenteID  string    `json:"atendenteId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LoginRequest credenciais.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// LoginResponse token de sessão (também enviado em cookie) e usuário.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// SessionUser dados do usuário carregados no token.
type SessionUser struct {
	ID           string `json:"id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Role         string `json:"tipoUsuario"`
	SupervisorID string `json:"supervisorId,omitempty"`
}

// SessionResponse saída de GET /api/auth/session.
type SessionResponse struct {
	User        SessionUser             `json:"user"`
	Permissions permission.Capabilities `json:"permissoes"`
	ExpiresAt   *time.Time              `json:"expiresAt,omitempty"`
}
