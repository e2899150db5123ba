package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/koerner360/koerner360-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

var testIdentity = pkgjwt.Identity{
	UserID:       "00000000-0000-0000-0000-000000000001",
	Email:        "sup@koerner.com.br",
	Name:         "Supervisora",
	Role:         "SUPERVISOR",
	SupervisorID: "00000000-0000-0000-0000-000000000009",
}

func TestGenerateAndParse_PreservaIdentidade(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "koerner360-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, claims.Identity())
	assert.Equal(t, testIdentity.UserID, claims.Subject)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "koerner360-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorreto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "koerner360-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("outro-secret", tok)
	assert.Error(t, err)
}

func TestParse_SemUserID(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{Role: "ADMIN"}, "koerner360-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVazio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIdentity, "x", 60)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
