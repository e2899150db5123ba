package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koerner360/koerner360-api/pkg/config"
)

func TestLoad_SemSecret_RetornaErro(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingSessionSecret)
}

func TestLoad_LeVariaveisDeAmbiente(t *testing.T) {
	t.Setenv("SESSION_SECRET", "segredo")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_SECURE_COOKIE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Session.SecureCookie)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_OrigemCuringaRecusada(t *testing.T) {
	t.Setenv("SESSION_SECRET", "segredo")
	for _, origins := range []string{"*", "https://a.example, *"} {
		t.Setenv("CORS_ALLOWED_ORIGINS", origins)
		_, err := config.Load()
		assert.ErrorIs(t, err, config.ErrWildcardOrigin, origins)
	}
}

// unsetEnv remove a variável durante o teste e restaura o valor anterior no fim.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func TestLoad_DotEnvNaoSobrescreveAmbiente(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_NAME=via-dotenv\nHTTP_PORT=7070\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("SESSION_SECRET", "segredo")
	t.Setenv("HTTP_PORT", "9090")
	unsetEnv(t, "APP_NAME")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "via-dotenv", cfg.App.Name)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_SemDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_SECRET", "segredo")

	_, err := config.Load()
	assert.NoError(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "k360", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/k360?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
