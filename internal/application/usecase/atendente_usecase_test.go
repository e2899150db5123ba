package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koerner360/koerner360-api/internal/application/dto"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
)

func novoAtendente(cpf string) dto.CreateAtendenteRequest {
	return dto.CreateAtendenteRequest{
		Name:          "Carla Dias",
		Email:         "carla@atendentes.test",
		CPF:           cpf,
		Phone:         "(11) 98888-7777",
		Cargo:         "Recepcionista",
		Setor:         "Torre A",
		AdmissionDate: "2025-03-01",
	}
}

func TestAtendenteCreate_SemVinculo(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()

	in := novoAtendente("111.222.333-44")
	in.BirthDate = strPtr("1990-05-20")
	resp, err := f.atendentes.Create(context.Background(), sup1, in, "10.1.1.1")
	require.NoError(t, err)

	assert.Equal(t, "11122233344", resp.CPF)
	assert.Equal(t, "11988887777", resp.Phone)
	assert.Equal(t, entity.AtendenteAtivo, resp.Status)
	assert.Equal(t, "2025-03-01", resp.AdmissionDate)
	require.NotNil(t, resp.BirthDate)
	assert.Equal(t, "1990-05-20", *resp.BirthDate)
	assert.Nil(t, resp.UserID)

	logs := f.store.auditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, entityAtendente, logs[0].Entity)
}

func TestAtendenteCreate_VinculoComUsuario(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	f.store.seedUser("user-3", entity.RoleAtendente, strPtr(sup1.UserID))
	f.store.seedUser("cons-2", entity.RoleConsultor, nil)

	tests := []struct {
		name    string
		actor   string
		userID  string
		wantErr error
	}{
		{"supervisor de outra equipe", "sup2", "user-3", domain.ErrForbidden},
		{"usuário já vinculado", "sup1", "user-1", domain.ErrAtendenteLinked},
		{"usuário inexistente", "sup1", "user-9", domain.ErrUserNotFound},
		{"perfil diferente de ATENDENTE", "admin", "cons-2", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := novoAtendente("55566677788")
			in.UserID = strPtr(tt.userID)
			_, err := f.atendentes.Create(context.Background(), actorByName(tt.actor), in, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, f.store.auditLogs())

	in := novoAtendente("55566677788")
	in.UserID = strPtr("user-3")
	resp, err := f.atendentes.Create(context.Background(), sup1, in, "")
	require.NoError(t, err)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, "user-3", *resp.UserID)
	require.NotNil(t, resp.SupervisorID)
	assert.Equal(t, sup1.UserID, *resp.SupervisorID)
}

func TestAtendenteCreate_CPFDuplicado(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()

	_, err := f.atendentes.Create(context.Background(), admin, novoAtendente(cpfFor("at-1")), "")
	assert.ErrorIs(t, err, domain.ErrCPFAlreadyExists)
	assert.Empty(t, f.store.auditLogs())
}

func TestAtendenteCreate_Validacao(t *testing.T) {
	f := newFixture(t)

	_, err := f.atendentes.Create(context.Background(), admin, dto.CreateAtendenteRequest{
		Name:          "X",
		Email:         "invalido",
		CPF:           "123",
		AdmissionDate: "01/03/2025",
		Status:        "DEMITIDO",
	}, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{
		"atendente.cargo",
		"atendente.cpf",
		"atendente.dataAdmissao",
		"atendente.email",
		"atendente.nome",
		"atendente.setor",
		"atendente.status",
	}, fieldNames(t, err))
}

func TestAtendenteCreate_PerfisSemCriacao(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()

	_, err := f.atendentes.Create(context.Background(), consultor, novoAtendente("99988877766"), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.atendentes.Create(context.Background(), user1, novoAtendente("99988877766"), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAtendenteGetByID_Visibilidade(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   string
		wantErr error
	}{
		{"admin", "admin", nil},
		{"consultor", "consultor", nil},
		{"supervisor da equipe", "sup1", nil},
		{"supervisor de outra equipe", "sup2", domain.ErrForbidden},
		{"o próprio atendente", "user1", nil},
		{"outro atendente", "user2", domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.atendentes.GetByID(ctx, actorByName(tt.actor), "at-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "at-1", resp.ID)
		})
	}

	_, err := f.atendentes.GetByID(ctx, admin, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrAtendenteNotFound)
}

func TestAtendenteUpdate(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	ctx := context.Background()

	_, err := f.atendentes.Update(ctx, consultor, "at-1", dto.UpdateAtendenteRequest{Cargo: strPtr("Gerente")}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.atendentes.Update(ctx, sup2, "at-1", dto.UpdateAtendenteRequest{Cargo: strPtr("Gerente")}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.atendentes.Update(ctx, sup1, "at-1", dto.UpdateAtendenteRequest{
		CPF:    strPtr("12.34"),
		Status: strPtr("SUMIDO"),
		Cargo:  strPtr("  "),
	}, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{"cargo", "cpf", "status"}, fieldNames(t, err))

	resp, err := f.atendentes.Update(ctx, sup1, "at-1", dto.UpdateAtendenteRequest{
		Cargo:     strPtr(" Supervisor de Portaria "),
		Status:    strPtr(entity.AtendenteFerias),
		BirthDate: strPtr(""),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Supervisor de Portaria", resp.Cargo)
	assert.Equal(t, entity.AtendenteFerias, resp.Status)
	assert.Nil(t, resp.BirthDate)
	assert.Equal(t, fixedNow, resp.UpdatedAt)

	logs := f.store.auditLogs()
	require.Len(t, logs, 1)
	assert.JSONEq(t, `{"campos":["cargo","status","dataNascimento"]}`, logs[0].Details)
}

func TestAtendenteList_Escopo(t *testing.T) {
	f := newFixture(t)
	f.seedTeams()
	f.store.seedAtendente("at-3", nil, entity.AtendenteInativo)
	ctx := context.Background()

	ids := func(out *dto.ListResponse[dto.AtendenteResponse]) []string {
		r := make([]string, 0, len(out.Items))
		for _, a := range out.Items {
			r = append(r, a.ID)
		}
		return r
	}

	out, err := f.atendentes.List(ctx, user1, dto.AtendenteListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"at-1"}, ids(out))

	out, err = f.atendentes.List(ctx, sup2, dto.AtendenteListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"at-2"}, ids(out))

	out, err = f.atendentes.List(ctx, consultor, dto.AtendenteListQuery{Status: entity.AtendenteInativo})
	require.NoError(t, err)
	assert.Equal(t, []string{"at-3"}, ids(out))

	_, err = f.atendentes.List(ctx, admin, dto.AtendenteListQuery{Status: "QUALQUER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
