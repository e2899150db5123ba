package entity

import "time"

// Tipos de release.
const (
	ReleaseMajor  = "MAJOR"
	ReleaseMinor  = "MINOR"
	ReleasePatch  = "PATCH"
	ReleaseHotfix = "HOTFIX"
)

// Categorias de item de changelog.
const (
	ItemNovo      = "NOVO"
	ItemMelhoria  = "MELHORIA"
	ItemCorrecao  = "CORRECAO"
	ItemSeguranca = "SEGURANCA"
	ItemRemovido  = "REMOVIDO"
)

// Changelog é uma versão publicada (ou rascunho) com seus itens.
type Changelog struct {
	ID          string
	Version     string
	Title       string
	Description string
	Tipo        string
	ReleaseDate time.Time
	Published   bool
	AuthorID    string
	Items       []ChangelogItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChangelogItem é uma linha de uma versão.
type ChangelogItem struct {
	ID          string
	ChangelogID string
	Categoria   string
	Description string
	Ordem       int
}

// IsValidReleaseTipo informa se o tipo de release é conhecido.
func IsValidReleaseTipo(s string) bool {
	switch s {
	case ReleaseMajor, ReleaseMinor, ReleasePatch, ReleaseHotfix:
		return true
	}
	return false
}

// IsValidItemCategoria informa se a categoria do item é conhecida.
func IsValidItemCategoria(s string) bool {
	switch s {
	case ItemNovo, ItemMelhoria, ItemCorrecao, ItemSeguranca, ItemRemovido:
		return true
	}
	return false
}
