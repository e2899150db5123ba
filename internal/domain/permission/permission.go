// Package permission concentra a tabela estática perfil → capacidades e as
// regras de acesso a registros baseadas no vínculo de supervisão.
package permission

import "github.com/koerner360/koerner360-api/internal/domain/entity"

// Capabilities é o conjunto fixo de capacidades de um perfil.
type Capabilities struct {
	CanCreate     bool `json:"canCreate"`
	CanEdit       bool `json:"canEdit"`
	CanDeactivate bool `json:"canDeactivate"`
	CanViewAll    bool `json:"canViewAll"`
	CanViewTeam   bool `json:"canViewTeam"`
}

var table = map[string]Capabilities{
	entity.RoleAdmin: {
		CanCreate: true, CanEdit: true, CanDeactivate: true, CanViewAll: true, CanViewTeam: true,
	},
	entity.RoleSupervisor: {
		CanCreate: true, CanEdit: true, CanDeactivate: true, CanViewTeam: true,
	},
	entity.RoleAtendente: {},
	entity.RoleConsultor: {
		CanViewAll: true,
	},
}

// For devolve as capacidades do perfil. Perfis desconhecidos não têm nenhuma.
func For(role string) Capabilities {
	return table[role]
}

// CanManageRole informa se actorRole pode criar/editar/desativar usuários com targetRole.
// ADMIN gerencia qualquer perfil; SUPERVISOR apenas ATENDENTE.
func CanManageRole(actorRole, targetRole string) bool {
	switch actorRole {
	case entity.RoleAdmin:
		return entity.IsValidRole(targetRole)
	case entity.RoleSupervisor:
		return targetRole == entity.RoleAtendente
	}
	return false
}

// Actor é quem executa a ação.
type Actor struct {
	UserID string
	Role   string
}

// CanAccessRecord decide a leitura de um registro pertencente a ownerID
// cujo supervisor é supervisorID (ambos podem ser vazios).
func CanAccessRecord(a Actor, ownerID, supervisorID string) bool {
	caps := For(a.Role)
	if caps.CanViewAll {
		return true
	}
	if a.UserID == "" {
		return false
	}
	if ownerID == a.UserID {
		return true
	}
	return caps.CanViewTeam && supervisorID == a.UserID
}

// CanModifyRecord decide a edição de um registro de terceiro.
// CONSULTOR enxerga tudo mas não altera nada.
func CanModifyRecord(a Actor, supervisorID string) bool {
	caps := For(a.Role)
	if !caps.CanEdit {
		return false
	}
	if caps.CanViewAll {
		return true
	}
	return caps.CanViewTeam && a.UserID != "" && supervisorID == a.UserID
}

// HomePath é a página inicial do perfil.
func HomePath(role string) string {
	if role == entity.RoleConsultor {
		return "/consultor"
	}
	return "/dashboard"
}
