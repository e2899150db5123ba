package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

func TestAvaliacaoCreate_PeriodoPadraoEAuditoria(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()

	resp, err := f.avaliacoes.Create(context.Background(), sup1, dto.CreateAvaliacaoRequest{
		AtendenteID: "at-1",
		Nota:        5,
		Comentario:  "  excelente atendimento  ",
	}, "10.0.0.9")
	require.NoError(t, err)

	assert.Equal(t, "2026-10", resp.Periodo)
	assert.Equal(t, sup1.UserID, resp.AvaliadorID)
	assert.Equal(t, "excelente atendimento", resp.Comentario)
	assert.Equal(t, "Atendente at-1", resp.AtendenteName)

	logs := f.store.auditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, entityAvaliacao, logs[0].Entity)
	assert.JSONEq(t, `{"atendenteId":"at-1","nota":5,"periodo":"2026-10"}`, logs[0].Details)
}

func TestAvaliacaoCreate_UmaPorAvaliadorEPeriodo(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	ctx := context.Background()

	in := dto.CreateAvaliacaoRequest{AtendenteID: "at-1", Nota: 4, Periodo: "2026-09"}
	_, err := f.avaliacoes.Create(ctx, sup1, in, "")
	require.NoError(t, err)

	_, err = f.avaliacoes.Create(ctx, sup1, in, "")
	assert.ErrorIs(t, err, domain.ErrDuplicateAvaliacao)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.store.auditLogs(), 1, "tentativa duplicada não gera auditoria")

	in.Periodo = "2026-10"
	_, err = f.avaliacoes.Create(ctx, sup1, in, "")
	assert.NoError(t, err)

	_, err = f.avaliacoes.Create(ctx, admin, dto.CreateAvaliacaoRequest{AtendenteID: "at-1", Nota: 3, Periodo: "2026-09"}, "")
	assert.NoError(t, err, "outro avaliador no mesmo período")
}

func TestAvaliacaoCreate_Regras(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	f.store.seedAtendente("at-admin", strPtr(admin.UserID), entity.AtendenteAtivo)
	f.store.seedAtendente("at-inativo", nil, entity.AtendenteInativo)

	tests := []struct {
		name        string
		actor       string
		atendenteID string
		wantErr     error
	}{
		{"consultor não avalia", "consultor", "at-1", domain.ErrForbidden},
		{"atendente não avalia", "user2", "at-1", domain.ErrForbidden},
		{"supervisor de outra equipe", "sup2", "at-1", domain.ErrForbidden},
		{"autoavaliação", "admin", "at-admin", domain.ErrForbidden},
		{"atendente inexistente", "admin", "at-9", domain.ErrAtendenteNotFound},
		{"atendente inativo", "admin", "at-inativo", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.avaliacoes.Create(context.Background(), actorByName(tt.actor), dto.CreateAvaliacaoRequest{
				AtendenteID: tt.atendenteID, Nota: 4,
			}, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, f.store.auditLogs())
}

func TestAvaliacaoCreate_Validacao(t *testing.T) {
	f := newFixture(t)

	_, err := f.avaliacoes.Create(context.Background(), admin, dto.CreateAvaliacaoRequest{
		Nota:       6,
		Periodo:    "2026-13",
		Comentario: strings.Repeat("a", 1001),
	}, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{"atendenteId", "comentario", "nota", "periodo"}, fieldNames(t, err))

	_, err = f.avaliacoes.Create(context.Background(), admin, dto.CreateAvaliacaoRequest{AtendenteID: "x", Nota: 0}, "")
	assert.Equal(t, []string{"nota"}, fieldNames(t, err))
}

func TestAvaliacaoUpdate_SomenteAvaliadorOuAdmin(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	ctx := context.Background()

	created, err := f.avaliacoes.Create(ctx, sup1, dto.CreateAvaliacaoRequest{AtendenteID: "at-1", Nota: 2}, "")
	require.NoError(t, err)

	nota := 3
	_, err = f.avaliacoes.Update(ctx, sup2, created.ID, dto.UpdateAvaliacaoRequest{Nota: &nota}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.avaliacoes.Update(ctx, consultor, created.ID, dto.UpdateAvaliacaoRequest{Nota: &nota}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := f.avaliacoes.Update(ctx, sup1, created.ID, dto.UpdateAvaliacaoRequest{Nota: &nota, Comentario: strPtr(" revisada ")}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Nota)
	assert.Equal(t, "revisada", resp.Comentario)

	nota = 5
	resp, err = f.avaliacoes.Update(ctx, admin, created.ID, dto.UpdateAvaliacaoRequest{Nota: &nota}, "")
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Nota)

	invalida := 9
	_, err = f.avaliacoes.Update(ctx, admin, created.ID, dto.UpdateAvaliacaoRequest{Nota: &invalida}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.avaliacoes.Update(ctx, admin, "nao-existe", dto.UpdateAvaliacaoRequest{Nota: &nota}, "")
	assert.ErrorIs(t, err, domain.ErrAvaliacaoNotFound)
}

func TestAvaliacaoGetByID_Visibilidade(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	ctx := context.Background()

	created, err := f.avaliacoes.Create(ctx, sup1, dto.CreateAvaliacaoRequest{AtendenteID: "at-1", Nota: 4}, "")
	require.NoError(t, err)

	for _, name := range []string{"sup1", "user1", "admin", "consultor"} {
		_, err := f.avaliacoes.GetByID(ctx, actorByName(name), created.ID)
		assert.NoError(t, err, name)
	}
	for _, name := range []string{"sup2", "user2"} {
		_, err := f.avaliacoes.GetByID(ctx, actorByName(name), created.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden, name)
	}
}

func TestAvaliacaoList_FiltroDePeriodo(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	ctx := context.Background()

	_, err := f.avaliacoes.List(ctx, admin, dto.AvaliacaoListQuery{Periodo: "10/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.avaliacoes.Create(ctx, sup1, dto.CreateAvaliacaoRequest{AtendenteID: "at-1", Nota: 4, Periodo: "2026-08"}, "")
	require.NoError(t, err)
	_, err = f.avaliacoes.Create(ctx, sup1, dto.CreateAvaliacaoRequest{AtendenteID: "at-1", Nota: 5}, "")
	require.NoError(t, err)

	out, err := f.avaliacoes.List(ctx, admin, dto.AvaliacaoListQuery{Periodo: "2026-08"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 4, out.Items[0].Nota)
	assert.Equal(t, 1, out.Pagination.Total)

	_, err = f.avaliacoes.List(ctx, user1, dto.AvaliacaoListQuery{})
	assert.NoError(t, err)
}
