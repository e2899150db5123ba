package repository

// Scope restringe listagens pelo vínculo de supervisão.
// Zero value significa "sem restrição" (ADMIN e CONSULTOR).
type Scope struct {
	SupervisorID string // registros da equipe deste supervisor
	UserID       string // registros do próprio usuário
}

// Unrestricted informa se o escopo libera todos os registros.
func (s Scope) Unrestricted() bool {
	return s.SupervisorID == "" && s.UserID == ""
}

// Page parâmetros de paginação repassados ao banco.
type Page struct {
	Limit  int
	Offset int
}
