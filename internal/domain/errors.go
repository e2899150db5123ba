package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Classes de erro. Todo erro de domínio envolve exatamente uma delas;
// a camada HTTP decide o status apenas por errors.Is contra estas classes.
var (
	ErrUnauthorized = errors.New("não autenticado")
	ErrForbidden    = errors.New("acesso negado")
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrConflict     = errors.New("conflito com o estado atual")
	ErrInvalidInput = errors.New("entrada inválida")
)

// Erros específicos.
var (
	ErrInvalidCredentials = fmt.Errorf("%w: credenciais inválidas", ErrUnauthorized)
	ErrInactiveUser       = fmt.Errorf("%w: usuário inativo", ErrForbidden)
	ErrUserNotFound       = fmt.Errorf("%w: usuário", ErrNotFound)
	ErrAtendenteNotFound  = fmt.Errorf("%w: atendente", ErrNotFound)
	ErrAvaliacaoNotFound  = fmt.Errorf("%w: avaliação", ErrNotFound)
	ErrFeedbackNotFound   = fmt.Errorf("%w: feedback", ErrNotFound)
	ErrChangelogNotFound  = fmt.Errorf("%w: changelog", ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("%w: email já cadastrado", ErrConflict)
	ErrCPFAlreadyExists   = fmt.Errorf("%w: CPF já cadastrado", ErrConflict)
	ErrDuplicateAvaliacao = fmt.Errorf("%w: avaliação já registrada para o período", ErrConflict)
	ErrVersionExists      = fmt.Errorf("%w: versão já publicada", ErrConflict)
	ErrAtendenteLinked    = fmt.Errorf("%w: atendente já vinculado a outro usuário", ErrConflict)
	ErrDuplicate          = fmt.Errorf("%w: recurso duplicado", ErrConflict)
	ErrRoleNotManageable  = fmt.Errorf("%w: perfil não pode ser gerenciado por este usuário", ErrForbidden)
	ErrSelfDeactivation   = fmt.Errorf("%w: não é possível desativar o próprio usuário", ErrInvalidInput)
	ErrInvalidPeriod      = fmt.Errorf("%w: período inválido", ErrInvalidInput)
)

// ValidationError acumula mensagens por campo. Satisfaz errors.Is(err, ErrInvalidInput).
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError cria um erro vazio; use Add e depois OrNil.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra a mensagem do campo (mantém a primeira).
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// With registra a mensagem e devolve o próprio erro (atalho para um único campo).
func (e *ValidationError) With(field, msg string) *ValidationError {
	e.Add(field, msg)
	return e
}

// OrNil devolve nil quando nenhum campo foi registrado.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "dados inválidos: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
