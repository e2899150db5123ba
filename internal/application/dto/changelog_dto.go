package dto

import "time"

// ChangelogItemInput item de uma versão.
type ChangelogItemInput struct {
	Categoria   string `json:"categoria"`
	Description string `json:"descricao"`
}

// CreateChangelogRequest entrada para criar versão com itens.
type CreateChangelogRequest struct {
	Version     string               `json:"versao"`
	Title       string               `json:"titulo"`
	Description string               `json:"descricao"`
	Tipo        string               `json:"tipo"`
	ReleaseDate string               `json:"dataLancamento"` // YYYY-MM-DD; vazio = hoje
	Published   bool                 `json:"publicado"`
	Items       []ChangelogItemInput `json:"itens"`
}

// UpdateChangelogRequest atualização parcial; Items != nil substitui todos os itens.
type UpdateChangelogRequest struct {
	Title       *string               `json:"titulo"`
	Description *string               `json:"descricao"`
	Tipo        *string               `json:"tipo"`
	ReleaseDate *string               `json:"dataLancamento"`
	Published   *bool                 `json:"publicado"`
	Items       *[]ChangelogItemInput `json:"itens"`
}

// ChangelogItemResponse item na saída.
type ChangelogItemResponse struct {
	ID          string `json:"id"`
	Categoria   string `json:"categoria"`
	Description string `json:"descricao"`
	Ordem       int    `json:"ordem"`
}

// ChangelogResponse saída de versão.
type ChangelogResponse struct {
	ID          string                  `json:"id"`
	Version     string                  `json:"versao"`
	Title       string                  `json:"titulo"`
	Description string                  `json:"descricao"`
	Tipo        string                  `json:"tipo"`
	ReleaseDate string                  `json:"dataLancamento"`
	Published   bool                    `json:"publicado"`
	AuthorID    string                  `json:"autorId"`
	Items       []ChangelogItemResponse `json:"itens"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}
